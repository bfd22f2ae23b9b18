// Package renderer draws a label's elements onto a raster surface. The
// same geometry feeds both the editor canvas and the print rasterizer,
// so an element can never sit in different places in the two modes.
package renderer

import (
	"image"
	"log"
	"sort"

	"github.com/fogleman/gg"

	"github.com/marcos010894/innobyte-labels/internal/geometry"
	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Mode selects how a label is rendered.
type Mode int

const (
	// ModeInteractive draws the editing surface: guide overlays
	// (grid, margins, center lines, cut border) on top of the label.
	ModeInteractive Mode = iota
	// ModePrint draws the faithful print artifact: no guides, and
	// element variables resolved against a product when one is given.
	ModePrint
)

// Renderer converts a label configuration and its elements to an image
type Renderer struct {
	config labelformat.LabelConfig
	scale  float64
	width  int // canvas width in device pixels (after scale)
	height int
	ctx    *gg.Context
}

// New creates a renderer for the given label at 1:1 scale (96 DPI).
func New(config labelformat.LabelConfig) *Renderer {
	return NewScaled(config, 1)
}

// NewScaled creates a renderer whose output raster is scale times the
// 96 DPI reference size. The batch driver renders at a higher scale so
// labels stay sharp when placed on the PDF page.
func NewScaled(config labelformat.LabelConfig, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}

	w, h := geometry.CanvasSize(config)
	width := int(w*scale + 0.5)
	height := int(h*scale + 0.5)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	ctx := gg.NewContext(width, height)

	return &Renderer{
		config: config,
		scale:  scale,
		width:  width,
		height: height,
		ctx:    ctx,
	}
}

// Render draws the full element set and returns the resulting image.
// Elements paint in ascending zIndex, ties broken by slice order. An
// element that fails to render is logged and skipped; the rest of the
// label still comes out.
func (r *Renderer) Render(elements []labelformat.Element, mode Mode, product *labelformat.Product, opts variables.Options) (image.Image, error) {
	r.drawBackground()

	ordered := make([]labelformat.Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})

	for _, el := range ordered {
		if mode == ModePrint && product != nil {
			el = resolveElement(el, *product, opts)
		}

		if err := r.renderElement(&el); err != nil {
			log.Printf("render: element %s (%s) skipped: %v", el.ID, el.Type, err)
		}
	}

	if mode == ModeInteractive {
		r.drawGuides()
	}

	return r.ctx.Image(), nil
}

func (r *Renderer) renderElement(el *labelformat.Element) error {
	switch el.Type {
	case labelformat.TypeText:
		return r.renderText(el)
	case labelformat.TypeBarcode:
		return r.renderBarcode(el)
	case labelformat.TypeQRCode:
		return r.renderQRCode(el)
	case labelformat.TypeImage:
		return r.renderImage(el)
	case labelformat.TypeRectangle:
		return r.renderRectangle(el)
	default:
		// Unknown element kinds render nothing so templates saved by
		// a newer version still print.
		return nil
	}
}

// resolveElement substitutes product variables into the fields that
// carry them, falling back to the raw template text when resolution
// comes out blank. Geometry is untouched.
func resolveElement(el labelformat.Element, product labelformat.Product, opts variables.Options) labelformat.Element {
	switch el.Type {
	case labelformat.TypeText:
		el.Content = variables.ResolveOrKeep(el.Content, product, opts)
	case labelformat.TypeQRCode, labelformat.TypeBarcode:
		el.Value = variables.ResolveOrKeep(el.Value, product, opts)
	}
	return el
}

func (r *Renderer) drawBackground() {
	bg := r.config.BackgroundColor
	if bg == "" {
		bg = "#ffffff"
	}
	r.ctx.SetHexColor(bg)
	r.ctx.Clear()
}

// layout resolves an element's placement and applies the raster scale.
func (r *Renderer) layout(el *labelformat.Element) geometry.Rect {
	rect := geometry.Layout(*el)
	rect.X *= r.scale
	rect.Y *= r.scale
	rect.Width *= r.scale
	rect.Height *= r.scale
	return rect
}
