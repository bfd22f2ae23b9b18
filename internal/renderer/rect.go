package renderer

import (
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func (r *Renderer) renderRectangle(el *labelformat.Element) error {
	rect := r.layout(el)

	radius := el.BorderRadius * r.scale
	if max := minF(rect.Width, rect.Height) / 2; radius > max {
		radius = max
	}

	if el.FillColor != "" {
		r.ctx.SetHexColor(el.FillColor)
		if radius > 0 {
			r.ctx.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, radius)
		} else {
			r.ctx.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		}
		r.ctx.Fill()
	}

	if el.BorderWidth > 0 {
		borderColor := el.BorderColor
		if borderColor == "" {
			borderColor = "#000000"
		}
		r.ctx.SetHexColor(borderColor)
		r.ctx.SetLineWidth(el.BorderWidth * r.scale)

		if radius > 0 {
			r.ctx.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, radius)
		} else {
			r.ctx.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		}
		r.ctx.Stroke()
	}

	return nil
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
