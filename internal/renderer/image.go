package renderer

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/marcos010894/innobyte-labels/internal/geometry"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Remote fetches must not stall the batch; a slow host degrades to the
// placeholder instead.
var imageClient = &http.Client{Timeout: 10 * time.Second}

func (r *Renderer) renderImage(el *labelformat.Element) error {
	rect := r.layout(el)

	img, err := loadImage(el.Src)
	if err != nil {
		// Broken sources degrade to a placeholder rather than
		// aborting the label.
		r.drawImagePlaceholder(rect)
		return fmt.Errorf("image source degraded to placeholder: %w", err)
	}

	targetW, targetH := int(rect.Width), int(rect.Height)
	if targetW < 1 || targetH < 1 {
		return fmt.Errorf("image area %vx%v too small", rect.Width, rect.Height)
	}

	switch el.ObjectFit {
	case "cover":
		img = imaging.Fill(img, targetW, targetH, imaging.Center, imaging.Lanczos)
	case "fill":
		img = imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	default: // contain
		img = imaging.Fit(img, targetW, targetH, imaging.Lanczos)
	}

	if el.Opacity > 0 && el.Opacity < 1 {
		img = applyOpacity(img, el.Opacity)
	}

	// Center the scaled image inside the element box (only contain
	// and cover can leave slack, and cover only by rounding)
	x := int(rect.X) + (targetW-img.Bounds().Dx())/2
	y := int(rect.Y) + (targetH-img.Bounds().Dy())/2
	r.ctx.DrawImage(img, x, y)

	return nil
}

// loadImage resolves an image element source: an embedded data URI, an
// http(s) URL, or a local file path.
func loadImage(src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}

	switch {
	case strings.HasPrefix(src, "data:"):
		comma := strings.Index(src, ",")
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		data, err := base64.StdEncoding.DecodeString(src[comma+1:])
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		img, _, err := image.Decode(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("decode embedded image: %w", err)
		}
		return img, nil

	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		resp, err := imageClient.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode remote image: %w", err)
		}
		return img, nil

	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open image file: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode image file: %w", err)
		}
		return img, nil
	}
}

func applyOpacity(img image.Image, opacity float64) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			a := float64(ca) * opacity
			// RGBA() returns premultiplied components; scale them
			// with the alpha so the pixel stays premultiplied.
			out.Set(x, y, color.RGBA64{
				R: uint16(float64(cr) * opacity),
				G: uint16(float64(cg) * opacity),
				B: uint16(float64(cb) * opacity),
				A: uint16(a),
			})
		}
	}

	return out
}

// drawImagePlaceholder paints the gray "IMG" box used when a source
// cannot be loaded.
func (r *Renderer) drawImagePlaceholder(rect geometry.Rect) {
	r.ctx.SetHexColor("#d1d5db")
	r.ctx.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.ctx.Fill()

	r.ctx.SetHexColor("#6b7280")
	font := geometry.Font{Size: 12}
	loadFont(r.ctx, font, 12*r.scale)

	w, h := r.ctx.MeasureString("IMG")
	r.ctx.DrawString("IMG", rect.X+(rect.Width-w)/2, rect.Y+(rect.Height+h)/2)
}
