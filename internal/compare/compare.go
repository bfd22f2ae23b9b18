// Package compare detects geometric drift between a label as rendered
// in the editor and as rendered for print. With both paths sharing one
// layout function drift should never occur; this engine exists to
// prove that on real templates and to surface regressions.
package compare

import (
	"fmt"
	"math"
	"strings"

	"github.com/marcos010894/innobyte-labels/internal/geometry"
	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Epsilon is the position tolerance in pixels. Deltas at or below it
// are float noise, not drift.
const Epsilon = 0.01

// ElementPositionInfo is one element's resolved geometry snapshot.
type ElementPositionInfo struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PositionDifference is the per-element diff between the two modes.
type PositionDifference struct {
	ElementID     string  `json:"elementId"`
	DeltaX        float64 `json:"deltaX"`
	DeltaY        float64 `json:"deltaY"`
	DeltaWidth    float64 `json:"deltaWidth"`
	DeltaHeight   float64 `json:"deltaHeight"`
	HasDifference bool    `json:"hasDifference"`
}

// Result is the full comparison output.
type Result struct {
	Differences    []PositionDifference  `json:"differences"`
	EditPositions  []ElementPositionInfo `json:"editPositions"`
	PrintPositions []ElementPositionInfo `json:"printPositions"`
}

// Compare snapshots element geometry under edit-mode rendering (raw
// template elements) and print-mode rendering (variable-resolved
// elements) and diffs them. The template is never mutated.
func Compare(tpl labelformat.Template, product labelformat.Product, opts variables.Options) Result {
	result := Result{
		Differences:    make([]PositionDifference, 0, len(tpl.Elements)),
		EditPositions:  make([]ElementPositionInfo, 0, len(tpl.Elements)),
		PrintPositions: make([]ElementPositionInfo, 0, len(tpl.Elements)),
	}

	printByID := make(map[string]ElementPositionInfo, len(tpl.Elements))

	for _, el := range tpl.Elements {
		result.EditPositions = append(result.EditPositions, snapshot(el))

		resolved := resolveForPrint(el, product, opts)
		info := snapshot(resolved)
		result.PrintPositions = append(result.PrintPositions, info)
		printByID[el.ID] = info
	}

	for _, edit := range result.EditPositions {
		pr, ok := printByID[edit.ID]
		if !ok {
			continue
		}

		result.Differences = append(result.Differences, diff(edit, pr))
	}

	return result
}

// diff computes the per-element delta and classifies it against
// Epsilon.
func diff(edit, pr ElementPositionInfo) PositionDifference {
	d := PositionDifference{
		ElementID:   edit.ID,
		DeltaX:      pr.X - edit.X,
		DeltaY:      pr.Y - edit.Y,
		DeltaWidth:  pr.Width - edit.Width,
		DeltaHeight: pr.Height - edit.Height,
	}
	d.HasDifference = math.Abs(d.DeltaX) > Epsilon ||
		math.Abs(d.DeltaY) > Epsilon ||
		math.Abs(d.DeltaWidth) > Epsilon ||
		math.Abs(d.DeltaHeight) > Epsilon
	return d
}

func snapshot(el labelformat.Element) ElementPositionInfo {
	rect := geometry.Layout(el)
	return ElementPositionInfo{
		ID:     el.ID,
		Type:   el.Type,
		X:      rect.X,
		Y:      rect.Y,
		Width:  rect.Width,
		Height: rect.Height,
	}
}

func resolveForPrint(el labelformat.Element, product labelformat.Product, opts variables.Options) labelformat.Element {
	switch el.Type {
	case labelformat.TypeText:
		el.Content = variables.ResolveOrKeep(el.Content, product, opts)
	case labelformat.TypeQRCode, labelformat.TypeBarcode:
		el.Value = variables.ResolveOrKeep(el.Value, product, opts)
	}
	return el
}

// HasDrift reports whether any element moved between the two modes.
func (r Result) HasDrift() bool {
	for _, d := range r.Differences {
		if d.HasDifference {
			return true
		}
	}
	return false
}

// Report renders the element-by-element diagnostic dump. The caller
// decides where it goes (log, response body, clipboard).
func (r Result) Report() string {
	var b strings.Builder

	b.WriteString("=== Comparação de posições: edição vs impressão ===\n")
	b.WriteString(fmt.Sprintf("Elementos: %d\n\n", len(r.Differences)))

	editByID := make(map[string]ElementPositionInfo, len(r.EditPositions))
	for _, p := range r.EditPositions {
		editByID[p.ID] = p
	}
	printByID := make(map[string]ElementPositionInfo, len(r.PrintPositions))
	for _, p := range r.PrintPositions {
		printByID[p.ID] = p
	}

	for _, d := range r.Differences {
		edit := editByID[d.ElementID]
		pr := printByID[d.ElementID]

		b.WriteString(fmt.Sprintf("[%s] %s\n", edit.Type, d.ElementID))
		b.WriteString(fmt.Sprintf("  edição:    x=%.2f y=%.2f w=%.2f h=%.2f\n", edit.X, edit.Y, edit.Width, edit.Height))
		b.WriteString(fmt.Sprintf("  impressão: x=%.2f y=%.2f w=%.2f h=%.2f\n", pr.X, pr.Y, pr.Width, pr.Height))

		if d.HasDifference {
			b.WriteString(fmt.Sprintf("  DRIFT: dx=%.2f dy=%.2f dw=%.2f dh=%.2f\n", d.DeltaX, d.DeltaY, d.DeltaWidth, d.DeltaHeight))
		} else {
			b.WriteString("  ok\n")
		}
		b.WriteString("\n")
	}

	if r.HasDrift() {
		b.WriteString("Resultado: DIVERGÊNCIA DETECTADA\n")
	} else {
		b.WriteString("Resultado: posições idênticas\n")
	}

	return b.String()
}
