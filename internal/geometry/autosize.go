package geometry

import (
	"math"
	"strings"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Font identifies a text style for measurement.
type Font struct {
	Family string
	Size   float64
	Weight string
	Italic bool
}

// Metrics are the measured dimensions of a piece of text.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// TextMeasurer measures rendered text without a display surface. The
// renderer provides a font-backed implementation; tests use a fake.
type TextMeasurer interface {
	MeasureText(s string, f Font) Metrics
}

const (
	DefaultFontSize   = 16.0
	DefaultLineHeight = 1.2

	// Small padding below the last line so descenders are not clipped
	autoSizePadding = 2.0
	// A candidate height must grow by more than this before the
	// element is resized, so re-renders do not thrash the height
	// while the user drags a resize handle.
	growThreshold = 1.0
)

// ElementFont returns the measurement font for a text element,
// applying defaults for unset fields.
func ElementFont(el labelformat.Element) Font {
	f := Font{
		Family: el.FontFamily,
		Size:   el.FontSize,
		Weight: el.FontWeight,
		Italic: el.Italic,
	}
	if f.Size <= 0 {
		f.Size = DefaultFontSize
	}
	return f
}

// AutoSizeText computes the height a text element needs for its
// content and returns the element's new height. The height only ever
// grows: shrinking content never pulls the box below a size the user
// set by hand.
func AutoSizeText(el labelformat.Element, m TextMeasurer) float64 {
	font := ElementFont(el)

	lineHeight := el.LineHeight
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	lines := CountLines(el.Content, el.Width, el.NoWrap, font, m)

	glyphs := m.MeasureText(el.Content, font)
	candidate := math.Max(float64(lines)*font.Size*lineHeight, glyphs.Ascent+glyphs.Descent) + autoSizePadding
	floor := math.Ceil(font.Size * lineHeight)

	switch {
	case el.Height < floor:
	case candidate > el.Height+growThreshold:
	case el.Width == 0:
	default:
		return el.Height
	}

	return math.Max(candidate, floor)
}

// CountLines returns the number of rendered lines for content wrapped
// to the given width: explicit newlines split paragraphs, and unless
// noWrap is set each paragraph is greedily word-wrapped.
func CountLines(content string, width float64, noWrap bool, font Font, m TextMeasurer) int {
	paragraphs := strings.Split(content, "\n")

	wrapped := len(WrapLines(content, width, noWrap, font, m))
	if wrapped < len(paragraphs) {
		return len(paragraphs)
	}
	return wrapped
}

// WrapLines splits content into the lines the renderer draws, greedily
// packing words until the next one would overflow the width.
func WrapLines(content string, width float64, noWrap bool, font Font, m TextMeasurer) []string {
	paragraphs := strings.Split(content, "\n")

	if noWrap || width <= 0 {
		return paragraphs
	}

	var lines []string
	for _, p := range paragraphs {
		lines = append(lines, wrapParagraph(p, width, font, m)...)
	}
	return lines
}

func wrapParagraph(text string, width float64, font Font, m TextMeasurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if current != "" && m.MeasureText(candidate, font).Width > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
