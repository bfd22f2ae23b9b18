package renderer

// Editor guide overlays. These exist only in interactive mode; the
// print path never calls into this file.

const (
	gridColor      = "#e5e7eb"
	marginColor    = "#fde68a"
	centerColor    = "#93c5fd"
	cutBorderColor = "#9ca3af"

	defaultGridSize = 10.0
)

func (r *Renderer) drawGuides() {
	if r.config.ShowGrid {
		r.drawGrid()
	}
	if r.config.ShowMargins {
		r.drawMarginBands()
	}
	if r.config.ShowCenterLine {
		r.drawCenterLines()
	}
	if r.config.ShowBorders {
		r.drawCutBorder()
	}
}

func (r *Renderer) drawGrid() {
	step := r.config.GridSize * r.scale
	if step <= 0 {
		step = defaultGridSize * r.scale
	}

	w, h := float64(r.width), float64(r.height)

	r.ctx.SetHexColor(gridColor)
	r.ctx.SetLineWidth(1)

	for x := step; x < w; x += step {
		r.ctx.DrawLine(x, 0, x, h)
		r.ctx.Stroke()
	}
	for y := step; y < h; y += step {
		r.ctx.DrawLine(0, y, w, y)
		r.ctx.Stroke()
	}
}

// drawMarginBands shades the display-only margin guides. These mark
// the area the user wants to keep clear; they are not print margins.
func (r *Renderer) drawMarginBands() {
	w, h := float64(r.width), float64(r.height)

	top := r.config.MarginTop * r.scale
	bottom := r.config.MarginBottom * r.scale
	left := r.config.MarginLeft * r.scale
	right := r.config.MarginRight * r.scale

	r.ctx.SetHexColor(marginColor)

	if top > 0 {
		r.ctx.DrawRectangle(0, 0, w, top)
		r.ctx.Fill()
	}
	if bottom > 0 {
		r.ctx.DrawRectangle(0, h-bottom, w, bottom)
		r.ctx.Fill()
	}
	if left > 0 {
		r.ctx.DrawRectangle(0, 0, left, h)
		r.ctx.Fill()
	}
	if right > 0 {
		r.ctx.DrawRectangle(w-right, 0, right, h)
		r.ctx.Fill()
	}
}

func (r *Renderer) drawCenterLines() {
	w, h := float64(r.width), float64(r.height)

	r.ctx.SetHexColor(centerColor)
	r.ctx.SetLineWidth(1)

	r.ctx.DrawLine(w/2, 0, w/2, h)
	r.ctx.Stroke()
	r.ctx.DrawLine(0, h/2, w, h/2)
	r.ctx.Stroke()
}

// drawCutBorder dashes the label outline so the user can see the cut
// line while editing.
func (r *Renderer) drawCutBorder() {
	w, h := float64(r.width), float64(r.height)

	r.ctx.SetHexColor(cutBorderColor)
	r.ctx.SetLineWidth(1)
	r.ctx.SetDash(4*r.scale, 3*r.scale)

	r.ctx.DrawRectangle(0.5, 0.5, w-1, h-1)
	r.ctx.Stroke()

	r.ctx.SetDash()
}
