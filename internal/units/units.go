// Package units converts physical label measurements to device pixels
// at the fixed 96 DPI reference resolution.
package units

import "github.com/marcos010894/innobyte-labels/pkg/labelformat"

// Conversion factors to device pixels at 96 DPI
const (
	PixelsPerMillimeter = 3.7795275591
	PixelsPerCentimeter = 37.795275591
	PixelsPerInch       = 96.0
)

// ConversionRate returns the pixels-per-unit factor. Unknown units are
// treated as already being pixels.
func ConversionRate(unit labelformat.Unit) float64 {
	switch unit {
	case labelformat.UnitMillimeter:
		return PixelsPerMillimeter
	case labelformat.UnitCentimeter:
		return PixelsPerCentimeter
	case labelformat.UnitInch:
		return PixelsPerInch
	default:
		return 1
	}
}

// ToPixels converts a value in the given unit to device pixels.
func ToPixels(value float64, unit labelformat.Unit) float64 {
	return value * ConversionRate(unit)
}

// ToMillimeters converts a value in the given unit to millimeters. The
// page layout and PDF driver work in millimeters throughout.
func ToMillimeters(value float64, unit labelformat.Unit) float64 {
	return ToPixels(value, unit) / PixelsPerMillimeter
}
