// Package pagelayout computes how many labels fit on a physical page
// and where each grid cell sits. All values are in millimeters.
package pagelayout

import (
	"math"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Fixed page sizes in millimeters
const (
	A4Width     = 210.0
	A4Height    = 297.0
	CartaWidth  = 215.9
	CartaHeight = 279.4

	// Minimum thermal roll width
	ThermalMinWidth = 108.0
)

// Grid is the resolved page layout: the label grid plus everything
// needed to place a cell.
type Grid struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`

	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	LabelWidth  float64 `json:"labelWidth"`
	LabelHeight float64 `json:"labelHeight"`

	MarginLeft        float64 `json:"marginLeft"`
	MarginTop         float64 `json:"marginTop"`
	SpacingHorizontal float64 `json:"spacingHorizontal"`
	SpacingVertical   float64 `json:"spacingVertical"`

	Thermal bool `json:"thermal"`
}

// ComputeGrid computes the maximum columns x rows grid for the given
// label size (mm) and page configuration.
//
// Placing N labels along an axis consumes N*label + (N-1)*spacing of
// the usable size; solving for N gives
//
//	N = floor((usable + spacing) / (label + spacing))
//
// which avoids an off-by-one at N=1 by adding one spacing unit to both
// sides before dividing.
func ComputeGrid(labelWidth, labelHeight float64, cfg labelformat.PagePrintConfig) Grid {
	if cfg.PageSizeType == labelformat.PageThermal {
		return thermalGrid(labelWidth, labelHeight, cfg)
	}

	pageW, pageH := pageSize(cfg)

	usableW := pageW - cfg.MarginLeft - cfg.MarginRight
	usableH := pageH - cfg.MarginTop - cfg.MarginBottom

	columns := gridCount(usableW, labelWidth, cfg.SpacingHorizontal)
	rows := gridCount(usableH, labelHeight, cfg.SpacingVertical)

	return Grid{
		Columns:           columns,
		Rows:              rows,
		PageWidth:         pageW,
		PageHeight:        pageH,
		LabelWidth:        labelWidth,
		LabelHeight:       labelHeight,
		MarginLeft:        cfg.MarginLeft,
		MarginTop:         cfg.MarginTop,
		SpacingHorizontal: cfg.SpacingHorizontal,
		SpacingVertical:   cfg.SpacingVertical,
	}
}

// thermalGrid collapses the layout to a single row on a continuous
// roll: page height equals the label height, vertical margins and
// spacing are forced to zero.
func thermalGrid(labelWidth, labelHeight float64, cfg labelformat.PagePrintConfig) Grid {
	columns := cfg.Columns
	if columns < 1 {
		columns = 1
	}

	pageW := cfg.CustomPageWidth
	if pageW <= 0 {
		pageW = math.Max(ThermalMinWidth,
			float64(columns)*labelWidth+float64(columns-1)*cfg.SpacingHorizontal)
	}

	return Grid{
		Columns:           columns,
		Rows:              1,
		PageWidth:         pageW,
		PageHeight:        labelHeight,
		LabelWidth:        labelWidth,
		LabelHeight:       labelHeight,
		MarginLeft:        cfg.MarginLeft,
		MarginTop:         0,
		SpacingHorizontal: cfg.SpacingHorizontal,
		SpacingVertical:   0,
		Thermal:           true,
	}
}

func pageSize(cfg labelformat.PagePrintConfig) (w, h float64) {
	switch cfg.PageSizeType {
	case labelformat.PageCarta:
		return CartaWidth, CartaHeight
	case labelformat.PageCustom:
		return cfg.CustomPageWidth, cfg.CustomPageHeight
	default:
		return A4Width, A4Height
	}
}

func gridCount(usable, label, spacing float64) int {
	if label <= 0 {
		return 1
	}
	n := int(math.Floor((usable + spacing) / (label + spacing)))
	if n < 1 {
		n = 1
	}
	return n
}

// PerPage returns the number of grid cells on one page.
func (g Grid) PerPage() int {
	return g.Columns * g.Rows
}

// CellOffset returns the top-left corner of the cell at (col, row) in
// millimeters from the page origin.
func (g Grid) CellOffset(col, row int) (x, y float64) {
	x = g.MarginLeft + float64(col)*(g.LabelWidth+g.SpacingHorizontal)
	y = g.MarginTop + float64(row)*(g.LabelHeight+g.SpacingVertical)
	return x, y
}

// Cell maps a linear index to its (col, row) position on the page it
// lands on.
func (g Grid) Cell(index int) (col, row int) {
	onPage := index % g.PerPage()
	return onPage % g.Columns, onPage / g.Columns
}
