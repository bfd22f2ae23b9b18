// Package labelformat defines the types for the persisted label template format
package labelformat

import "time"

// Unit is a physical measurement unit for label dimensions
type Unit string

const (
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitInch       Unit = "in"
	UnitPixel      Unit = "px"
)

// Element kinds
const (
	TypeText      = "text"
	TypeQRCode    = "qrcode"
	TypeBarcode   = "barcode"
	TypeImage     = "image"
	TypeRectangle = "rectangle"
)

// Page size types for printing
const (
	PageA4      = "a4"
	PageCarta   = "carta"
	PageThermal = "altura-etiqueta"
	PageCustom  = "personalizado"
)

// LabelConfig is the physical description of one label
type LabelConfig struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Unit            Unit    `json:"unit"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`

	// Display-only margin guides, not print margins
	MarginTop    float64 `json:"marginTop,omitempty"`
	MarginBottom float64 `json:"marginBottom,omitempty"`
	MarginLeft   float64 `json:"marginLeft,omitempty"`
	MarginRight  float64 `json:"marginRight,omitempty"`

	GridSize       float64 `json:"gridSize,omitempty"`
	ShowGrid       bool    `json:"showGrid,omitempty"`
	ShowMargins    bool    `json:"showMargins,omitempty"`
	ShowCenterLine bool    `json:"showCenterLine,omitempty"`
	ShowBorders    bool    `json:"showBorders,omitempty"`

	// Legacy single-label repeat count
	Columns int `json:"columns,omitempty"`
	Rows    int `json:"rows,omitempty"`
}

// Element represents any element placed on a label. The Type field
// discriminates which of the optional field groups applies.
type Element struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"zIndex,omitempty"`
	Locked bool    `json:"locked,omitempty"`

	// Text element
	Content    string  `json:"content,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	Underline  bool    `json:"underline,omitempty"`
	NoWrap     bool    `json:"noWrap,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`

	// QR code and barcode elements
	Value                string `json:"value,omitempty"`
	BgColor              string `json:"bgColor,omitempty"`
	FgColor              string `json:"fgColor,omitempty"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel,omitempty"`

	// Barcode element
	Format       string `json:"format,omitempty"`
	DisplayValue bool   `json:"displayValue,omitempty"`
	LineColor    string `json:"lineColor,omitempty"`
	Background   string `json:"background,omitempty"`

	// Image element
	Src       string  `json:"src,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
	ObjectFit string  `json:"objectFit,omitempty"`

	// Rectangle element
	FillColor    string  `json:"fillColor,omitempty"`
	BorderColor  string  `json:"borderColor,omitempty"`
	BorderWidth  float64 `json:"borderWidth,omitempty"`
	BorderRadius float64 `json:"borderRadius,omitempty"`
}

// PagePrintConfig describes how labels are arranged on a physical page
type PagePrintConfig struct {
	PageSizeType      string  `json:"pageSizeType"`
	Columns           int     `json:"columns"`
	Rows              int     `json:"rows"`
	MarginTop         float64 `json:"marginTop,omitempty"`
	MarginBottom      float64 `json:"marginBottom,omitempty"`
	MarginLeft        float64 `json:"marginLeft,omitempty"`
	MarginRight       float64 `json:"marginRight,omitempty"`
	SpacingHorizontal float64 `json:"spacingHorizontal,omitempty"`
	SpacingVertical   float64 `json:"spacingVertical,omitempty"`
	CustomPageWidth   float64 `json:"customPageWidth,omitempty"`
	CustomPageHeight  float64 `json:"customPageHeight,omitempty"`
	ShowBorders       bool    `json:"showBorders,omitempty"`
	SkipLabels        int     `json:"skipLabels,omitempty"`
}

// Template is the aggregate root: one label design reused across products
type Template struct {
	ID              string           `json:"id"`
	Name            string           `json:"name,omitempty"`
	Config          LabelConfig      `json:"config"`
	Elements        []Element        `json:"elements"`
	PagePrintConfig *PagePrintConfig `json:"pagePrintConfig,omitempty"`
	Compartilhado   bool             `json:"compartilhado,omitempty"`
	CreatedAt       time.Time        `json:"createdAt,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt,omitempty"`
}

// Product supplies the substitution values for template variables.
// It is consumed from the ERP integration, never owned here.
type Product struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	Barcode     string  `json:"barcode"`
	Description string  `json:"description"`
}

// WithElement returns a copy of the template with the element matching
// el.ID replaced, or with el appended when no element has that id. The
// receiver is never mutated; the editor is the single writer and every
// update produces a fresh elements slice.
func (t Template) WithElement(el Element) Template {
	out := t
	out.Elements = make([]Element, len(t.Elements), len(t.Elements)+1)
	copy(out.Elements, t.Elements)

	for i := range out.Elements {
		if out.Elements[i].ID == el.ID {
			out.Elements[i] = el
			out.UpdatedAt = time.Now()
			return out
		}
	}

	out.Elements = append(out.Elements, el)
	out.UpdatedAt = time.Now()
	return out
}

// WithoutElement returns a copy of the template with the element removed.
func (t Template) WithoutElement(id string) Template {
	out := t
	out.Elements = make([]Element, 0, len(t.Elements))
	for _, el := range t.Elements {
		if el.ID != id {
			out.Elements = append(out.Elements, el)
		}
	}
	out.UpdatedAt = time.Now()
	return out
}
