package renderer

import (
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"

	"github.com/marcos010894/innobyte-labels/internal/geometry"
)

// Known font file locations, tried in order. Labels are usually
// printed from servers, so the Linux paths come first.
var systemFontDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype/liberation",
	"/System/Library/Fonts/Supplemental",
	"C:\\Windows\\Fonts",
}

// variant file names per style, tried per directory
var fontVariants = map[string][]string{
	"regular":     {"DejaVuSans.ttf", "LiberationSans-Regular.ttf", "Arial.ttf", "arial.ttf"},
	"bold":        {"DejaVuSans-Bold.ttf", "LiberationSans-Bold.ttf", "Arial Bold.ttf", "arialbd.ttf"},
	"italic":      {"DejaVuSans-Oblique.ttf", "LiberationSans-Italic.ttf", "Arial Italic.ttf", "ariali.ttf"},
	"bold-italic": {"DejaVuSans-BoldOblique.ttf", "LiberationSans-BoldItalic.ttf", "Arial Bold Italic.ttf", "arialbi.ttf"},
}

var fontPathCache sync.Map // style -> path

func fontStyle(weight string, italic bool) string {
	bold := weight == "bold" || weight == "700" || weight == "800" || weight == "900"
	switch {
	case bold && italic:
		return "bold-italic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	default:
		return "regular"
	}
}

// findFontPath locates a usable font file for the style, falling back
// to regular when no styled variant exists on the system.
func findFontPath(weight string, italic bool) string {
	style := fontStyle(weight, italic)

	if cached, ok := fontPathCache.Load(style); ok {
		return cached.(string)
	}

	for _, name := range fontVariants[style] {
		for _, dir := range systemFontDirs {
			sep := "/"
			if strings.Contains(dir, "\\") {
				sep = "\\"
			}
			path := dir + sep + name
			if _, err := os.Stat(path); err == nil {
				fontPathCache.Store(style, path)
				return path
			}
		}
	}

	if style != "regular" {
		path := findFontPath("", false)
		fontPathCache.Store(style, path)
		return path
	}

	fontPathCache.Store(style, "")
	return ""
}

// loadFont sets the context's font face for the element style at the
// given pixel size. Returns false when no font file could be loaded,
// in which case gg falls back to its built-in face.
func loadFont(ctx *gg.Context, font geometry.Font, sizePx float64) bool {
	path := findFontPath(font.Weight, font.Italic)
	if path == "" {
		return false
	}
	return ctx.LoadFontFace(path, sizePx) == nil
}

// fontMeasurer measures text through a throwaway gg context, giving
// the auto-size algorithm real glyph widths without a visible surface.
type fontMeasurer struct {
	mu  sync.Mutex
	ctx *gg.Context
}

// NewMeasurer returns a font-backed text measurer.
func NewMeasurer() geometry.TextMeasurer {
	return &fontMeasurer{ctx: gg.NewContext(1, 1)}
}

func (m *fontMeasurer) MeasureText(s string, f geometry.Font) geometry.Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := f.Size
	if size <= 0 {
		size = geometry.DefaultFontSize
	}

	loadFont(m.ctx, f, size)
	w, _ := m.ctx.MeasureString(s)

	// gg does not expose face metrics; the usual sans ratios are
	// close enough for bounding-box estimation.
	return geometry.Metrics{
		Width:   w,
		Ascent:  size * 0.8,
		Descent: size * 0.2,
	}
}
