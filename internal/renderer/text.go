package renderer

import (
	"github.com/marcos010894/innobyte-labels/internal/geometry"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func (r *Renderer) renderText(el *labelformat.Element) error {
	rect := r.layout(el)
	font := geometry.ElementFont(*el)

	lineHeight := el.LineHeight
	if lineHeight <= 0 {
		lineHeight = geometry.DefaultLineHeight
	}

	sizePx := font.Size * r.scale
	loadFont(r.ctx, font, sizePx)

	color := el.Color
	if color == "" {
		color = "#000000"
	}
	r.ctx.SetHexColor(color)

	// Wrapping happens in unscaled label space so the measurer and the
	// editor agree on line breaks regardless of raster scale.
	measurer := NewMeasurer()
	lines := geometry.WrapLines(el.Content, el.Width, el.NoWrap, font, measurer)

	lineStep := sizePx * lineHeight
	ascent := sizePx * 0.8

	for i, line := range lines {
		if line == "" {
			continue
		}

		w, _ := r.ctx.MeasureString(line)

		var x float64
		switch el.TextAlign {
		case "center":
			x = rect.X + (rect.Width-w)/2
		case "right":
			x = rect.X + rect.Width - w
		default:
			x = rect.X
		}

		baseline := rect.Y + float64(i)*lineStep + ascent
		r.ctx.DrawString(line, x, baseline)

		if el.Underline {
			r.ctx.SetLineWidth(r.scale)
			r.ctx.DrawLine(x, baseline+2*r.scale, x+w, baseline+2*r.scale)
			r.ctx.Stroke()
		}
	}

	return nil
}
