package units

import (
	"math"
	"testing"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func TestToPixels(t *testing.T) {
	tests := []struct {
		value    float64
		unit     labelformat.Unit
		expected float64
	}{
		{1, labelformat.UnitMillimeter, 3.7795275591},
		{1, labelformat.UnitCentimeter, 37.795275591},
		{1, labelformat.UnitInch, 96},
		{100, labelformat.UnitPixel, 100},
		{50, labelformat.UnitMillimeter, 188.976377955},
		{0, labelformat.UnitMillimeter, 0},
	}

	for _, tt := range tests {
		got := ToPixels(tt.value, tt.unit)
		if math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("ToPixels(%v, %s) = %v, want %v", tt.value, tt.unit, got, tt.expected)
		}
	}
}

func TestToPixels_UnknownUnitIsPassthrough(t *testing.T) {
	if got := ToPixels(42, "furlong"); got != 42 {
		t.Errorf("Expected unknown unit to pass through, got %v", got)
	}
}

func TestToPixels_RoundTrip(t *testing.T) {
	units := []labelformat.Unit{
		labelformat.UnitMillimeter,
		labelformat.UnitCentimeter,
		labelformat.UnitInch,
		labelformat.UnitPixel,
	}
	values := []float64{0.1, 1, 29.7, 50, 215.9, 1000}

	for _, u := range units {
		for _, v := range values {
			back := ToPixels(v, u) / ConversionRate(u)
			if math.Abs(back-v) > 1e-9 {
				t.Errorf("Round trip %v %s = %v", v, u, back)
			}
		}
	}
}

func TestToMillimeters(t *testing.T) {
	if got := ToMillimeters(1, labelformat.UnitInch); math.Abs(got-25.4) > 1e-6 {
		t.Errorf("ToMillimeters(1in) = %v, want 25.4", got)
	}
	if got := ToMillimeters(5, labelformat.UnitCentimeter); math.Abs(got-50) > 1e-6 {
		t.Errorf("ToMillimeters(5cm) = %v, want 50", got)
	}
	if got := ToMillimeters(3.7795275591, labelformat.UnitPixel); math.Abs(got-1) > 1e-6 {
		t.Errorf("ToMillimeters(3.78px) = %v, want 1", got)
	}
}
