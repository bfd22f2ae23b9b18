package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
	"github.com/skip2/go-qrcode"

	"github.com/marcos010894/innobyte-labels/internal/geometry"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func (r *Renderer) renderBarcode(el *labelformat.Element) error {
	if el.Value == "" {
		return nil
	}

	rect := r.layout(el)

	format := el.Format
	if format == "" {
		format = "CODE128"
	}

	var code barcode.Barcode
	var err error

	switch format {
	case "CODE128":
		code, err = code128.Encode(el.Value)
	case "CODE39":
		code, err = code39.Encode(el.Value, false, false)
	case "EAN13", "EAN8":
		code, err = ean.Encode(el.Value)
	case "UPC":
		// UPC-A is EAN-13 with a leading zero
		code, err = ean.Encode("0" + el.Value)
	case "ITF14":
		code, err = twooffive.Encode(el.Value, true)
	default:
		code, err = code128.Encode(el.Value)
	}
	if err != nil {
		return fmt.Errorf("encode %s barcode: %w", format, err)
	}

	barsHeight := rect.Height
	textHeight := 0.0
	if el.DisplayValue {
		textHeight = 12 * r.scale
		if textHeight > rect.Height/3 {
			textHeight = rect.Height / 3
		}
		barsHeight -= textHeight
	}

	targetW, targetH := int(rect.Width), int(barsHeight)
	if targetW < 1 || targetH < 1 {
		return fmt.Errorf("barcode area %vx%v too small", rect.Width, rect.Height)
	}

	scaled, err := barcode.Scale(code, targetW, targetH)
	if err != nil {
		return fmt.Errorf("scale barcode: %w", err)
	}

	fg := parseHexColor(el.LineColor, color.Black)
	bg := parseHexColor(el.Background, color.White)
	r.ctx.DrawImage(recolorBarcode(scaled, fg, bg), int(rect.X), int(rect.Y))

	if el.DisplayValue && textHeight > 0 {
		font := geometry.Font{Size: textHeight / r.scale}
		loadFont(r.ctx, font, textHeight)
		r.ctx.SetColor(fg)

		w, _ := r.ctx.MeasureString(el.Value)
		x := rect.X + (rect.Width-w)/2
		r.ctx.DrawString(el.Value, x, rect.Y+barsHeight+textHeight*0.85)
	}

	return nil
}

// recolorBarcode maps the generator's black/white output onto the
// element's line and background colors.
func recolorBarcode(src image.Image, fg, bg color.Color) image.Image {
	// Channel comparison, not interface equality: an explicit
	// "#000000" parses to color.RGBA while color.Black is a Gray16.
	if sameColor(fg, color.Black) && sameColor(bg, color.White) {
		return src
	}

	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g, _, _, _ := color.GrayModel.Convert(src.At(x, y)).RGBA()
			if g < 0x8000 {
				out.Set(x, y, fg)
			} else {
				out.Set(x, y, bg)
			}
		}
	}
	return out
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func (r *Renderer) renderQRCode(el *labelformat.Element) error {
	if el.Value == "" {
		return nil
	}

	// Layout already collapsed the rect to a square of min(w,h)
	rect := r.layout(el)
	side := int(rect.Width)
	if side < 1 {
		return fmt.Errorf("qr code area %v too small", rect.Width)
	}

	level := qrcode.Medium
	switch el.ErrorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	}

	qr, err := qrcode.New(el.Value, level)
	if err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}

	qr.ForegroundColor = parseHexColor(el.FgColor, color.Black)
	qr.BackgroundColor = parseHexColor(el.BgColor, color.White)
	qr.DisableBorder = true

	r.ctx.DrawImage(qr.Image(side), int(rect.X), int(rect.Y))

	return nil
}
