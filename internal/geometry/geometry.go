// Package geometry computes element placement for both the editor and
// the print rasterizer. Every renderer mode goes through Layout so the
// two can never disagree on where an element sits.
package geometry

import (
	"github.com/marcos010894/innobyte-labels/internal/units"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Rect is an element's resolved placement in device pixels,
// label-local, origin top-left.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout resolves the placement of one element. QR codes always occupy
// a square of side min(width, height).
func Layout(el labelformat.Element) Rect {
	r := Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}

	if el.Type == labelformat.TypeQRCode {
		side := r.Width
		if r.Height < side {
			side = r.Height
		}
		r.Width = side
		r.Height = side
	}

	return r
}

// CanvasSize returns the label's pixel dimensions.
func CanvasSize(config labelformat.LabelConfig) (width, height float64) {
	return units.ToPixels(config.Width, config.Unit), units.ToPixels(config.Height, config.Unit)
}

// MoveElement returns a copy of el moved to (x, y), clamped so the
// element stays inside the canvas. Locked elements do not move.
func MoveElement(el labelformat.Element, x, y float64, config labelformat.LabelConfig) labelformat.Element {
	if el.Locked {
		return el
	}

	canvasW, canvasH := CanvasSize(config)

	el.X = clamp(x, 0, canvasW-el.Width)
	el.Y = clamp(y, 0, canvasH-el.Height)
	return el
}

// ResizeElement returns a copy of el resized to (width, height),
// clamped to the canvas. Locked elements do not resize; QR codes keep
// width and height equal.
func ResizeElement(el labelformat.Element, width, height float64, config labelformat.LabelConfig) labelformat.Element {
	if el.Locked {
		return el
	}

	canvasW, canvasH := CanvasSize(config)

	const minSize = 1.0
	width = clamp(width, minSize, canvasW-el.X)
	height = clamp(height, minSize, canvasH-el.Y)

	if el.Type == labelformat.TypeQRCode {
		side := width
		if height < side {
			side = height
		}
		width = side
		height = side
	}

	el.Width = width
	el.Height = height
	return el
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
