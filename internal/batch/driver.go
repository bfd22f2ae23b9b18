// Package batch turns a template and a product selection into a
// print-ready multi-page PDF, one label per grid cell.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/marcos010894/innobyte-labels/internal/pagelayout"
	"github.com/marcos010894/innobyte-labels/internal/renderer"
	"github.com/marcos010894/innobyte-labels/internal/units"
	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// ErrEmptyTemplate aborts a batch before any rendering work starts.
var ErrEmptyTemplate = errors.New("o modelo está vazio, adicione elementos antes de imprimir")

// Labels rasterize at 3x the 96 DPI reference (~288 DPI) so they stay
// sharp on paper.
const defaultRasterScale = 3.0

// Driver generates print documents.
type Driver struct {
	rasterScale float64
}

// NewDriver creates a batch driver with the default raster quality.
func NewDriver() *Driver {
	return &Driver{rasterScale: defaultRasterScale}
}

// GenerateDocument renders one label per product and composites them
// into a multi-page PDF following the page grid. Products are placed
// in input order; cell assignment is a pure function of the linear
// index, so re-running with the same inputs gives the same document.
//
// A product whose label fails to rasterize leaves its cell blank and
// the batch continues. Cancellation is checked between products.
func (d *Driver) GenerateDocument(ctx context.Context, tpl labelformat.Template, products []labelformat.Product, cfg labelformat.PagePrintConfig, opts variables.Options) ([]byte, string, error) {
	if len(tpl.Elements) == 0 {
		return nil, "", ErrEmptyTemplate
	}

	labelW := units.ToMillimeters(tpl.Config.Width, tpl.Config.Unit)
	labelH := units.ToMillimeters(tpl.Config.Height, tpl.Config.Unit)

	grid := pagelayout.ComputeGrid(labelW, labelH, cfg)
	perPage := grid.PerPage()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: grid.PageWidth, Ht: grid.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Leading cells of the first page stay empty so a partially-used
	// sheet can be fed again.
	index := cfg.SkipLabels
	if index < 0 {
		index = 0
	}

	for i, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		if index > 0 && index%perPage == 0 {
			pdf.AddPage()
		}

		col, row := grid.Cell(index)
		x, y := grid.CellOffset(col, row)

		imgBytes, err := d.rasterizeLabel(tpl, product, opts)
		if err != nil {
			log.Printf("batch: label %d (%s) left blank: %v", i, product.Code, err)
			index++
			continue
		}

		name := fmt.Sprintf("label_%d", index)
		imgOpts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(imgBytes))
		pdf.ImageOptions(name, x, y, labelW, labelH, false, imgOpts, 0, "")

		if cfg.ShowBorders {
			pdf.SetDrawColor(128, 128, 128)
			pdf.SetLineWidth(0.1)
			pdf.Rect(x, y, labelW, labelH, "D")
		}

		index++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to output PDF: %w", err)
	}

	filename := fmt.Sprintf("etiquetas-%d-itens-%s.pdf", len(products), time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPNG renders one resolved label to a PNG, for single-label
// export and previews.
func (d *Driver) ExportPNG(tpl labelformat.Template, product labelformat.Product, opts variables.Options) ([]byte, string, error) {
	if len(tpl.Elements) == 0 {
		return nil, "", ErrEmptyTemplate
	}

	imgBytes, err := d.rasterizeLabel(tpl, product, opts)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("etiqueta-%s.png", time.Now().Format("2006-01-02"))
	return imgBytes, filename, nil
}

// rasterizeLabel renders one label in print mode at export quality.
// Each call uses a fresh surface held only for the duration of the
// call, bounding batch memory to one label at a time.
func (d *Driver) rasterizeLabel(tpl labelformat.Template, product labelformat.Product, opts variables.Options) ([]byte, error) {
	r := renderer.NewScaled(tpl.Config, d.rasterScale)

	img, err := r.Render(tpl.Elements, renderer.ModePrint, &product, opts)
	if err != nil {
		return nil, fmt.Errorf("rasterize label: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode label png: %w", err)
	}
	return buf.Bytes(), nil
}

// PlacementPlan returns the page and cell each product lands in
// without rendering anything. The API uses it for print previews.
func PlacementPlan(productCount int, labelW, labelH float64, cfg labelformat.PagePrintConfig) []Placement {
	grid := pagelayout.ComputeGrid(labelW, labelH, cfg)
	perPage := grid.PerPage()

	placements := make([]Placement, 0, productCount)
	index := cfg.SkipLabels
	if index < 0 {
		index = 0
	}

	for i := 0; i < productCount; i++ {
		col, row := grid.Cell(index)
		placements = append(placements, Placement{
			Product: i,
			Page:    index / perPage,
			Column:  col,
			Row:     row,
		})
		index++
	}

	return placements
}

// Placement locates one product's label in the output document.
type Placement struct {
	Product int `json:"product"`
	Page    int `json:"page"`
	Column  int `json:"column"`
	Row     int `json:"row"`
}
