package labelformat

import "fmt"

// Validate validates a Template structure
func Validate(t *Template) error {
	if err := validateConfig(&t.Config); err != nil {
		return err
	}

	ids := make(map[string]bool)
	for i, el := range t.Elements {
		if err := validateElement(&el); err != nil {
			return fmt.Errorf("element[%d]: %w", i, err)
		}
		if el.ID != "" {
			if ids[el.ID] {
				return fmt.Errorf("element[%d]: duplicate element id '%s'", i, el.ID)
			}
			ids[el.ID] = true
		}
	}

	if t.PagePrintConfig != nil {
		if err := validatePagePrintConfig(t.PagePrintConfig); err != nil {
			return fmt.Errorf("pagePrintConfig: %w", err)
		}
	}

	return nil
}

func validateConfig(c *LabelConfig) error {
	if c.Width <= 0 {
		return fmt.Errorf("config: width must be positive, got %v", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("config: height must be positive, got %v", c.Height)
	}

	switch c.Unit {
	case UnitMillimeter, UnitCentimeter, UnitInch, UnitPixel:
	default:
		return fmt.Errorf("config: invalid unit '%s' (must be mm, cm, in, or px)", c.Unit)
	}

	return nil
}

func validateElement(el *Element) error {
	if el.ID == "" {
		return fmt.Errorf("element id is required")
	}
	if el.Width < 0 || el.Height < 0 {
		return fmt.Errorf("negative size %vx%v", el.Width, el.Height)
	}

	switch el.Type {
	case TypeText:
		return validateTextElement(el)
	case TypeBarcode:
		return validateBarcodeElement(el)
	case TypeQRCode:
		return validateQRCodeElement(el)
	case TypeImage:
		return validateImageElement(el)
	case TypeRectangle:
		return nil
	case "":
		return fmt.Errorf("element type is required")
	default:
		// Unknown element types are accepted so templates saved by a
		// newer version still load; the renderer skips them.
		return nil
	}
}

func validateTextElement(el *Element) error {
	if el.TextAlign != "" {
		switch el.TextAlign {
		case "left", "center", "right":
		default:
			return fmt.Errorf("invalid textAlign '%s' (must be left, center, or right)", el.TextAlign)
		}
	}
	if el.FontSize < 0 {
		return fmt.Errorf("negative fontSize %v", el.FontSize)
	}
	return nil
}

func validateBarcodeElement(el *Element) error {
	if el.Format != "" {
		validFormats := []string{"CODE128", "EAN13", "EAN8", "UPC", "CODE39", "ITF14"}
		valid := false
		for _, f := range validFormats {
			if el.Format == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid barcode format '%s'", el.Format)
		}
	}
	return nil
}

func validateQRCodeElement(el *Element) error {
	if el.ErrorCorrectionLevel != "" {
		switch el.ErrorCorrectionLevel {
		case "L", "M", "Q", "H":
		default:
			return fmt.Errorf("invalid errorCorrectionLevel '%s' (must be L, M, Q, or H)", el.ErrorCorrectionLevel)
		}
	}
	return nil
}

func validateImageElement(el *Element) error {
	if el.Opacity < 0 || el.Opacity > 1 {
		return fmt.Errorf("opacity %v out of range [0,1]", el.Opacity)
	}
	if el.ObjectFit != "" {
		switch el.ObjectFit {
		case "contain", "cover", "fill":
		default:
			return fmt.Errorf("invalid objectFit '%s' (must be contain, cover, or fill)", el.ObjectFit)
		}
	}
	return nil
}

func validatePagePrintConfig(c *PagePrintConfig) error {
	switch c.PageSizeType {
	case PageA4, PageCarta, PageThermal, PageCustom, "":
	default:
		return fmt.Errorf("invalid pageSizeType '%s'", c.PageSizeType)
	}

	if c.Columns < 0 {
		return fmt.Errorf("columns must not be negative, got %d", c.Columns)
	}
	if c.SkipLabels < 0 {
		return fmt.Errorf("skipLabels must not be negative, got %d", c.SkipLabels)
	}

	if c.PageSizeType == PageCustom {
		if c.CustomPageWidth <= 0 || c.CustomPageHeight <= 0 {
			return fmt.Errorf("custom page size requires positive customPageWidth and customPageHeight")
		}
	}

	return nil
}
