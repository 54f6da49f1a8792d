// Package unitfmt provides number formatting utilities for rebartab.
//
// Catalogue quantities carry fixed units: cross-sectional areas in mm²,
// linear weights in kg/m, loads in kN, lengths in mm. This package keeps
// the decimal-place conventions consistent between the TUI panels and
// the query CLI output.
package unitfmt

import (
	"fmt"
	"strings"
)

// Area formats a cross-sectional area in mm². Format: "804.2 mm²"
func Area(mm2 float64) string {
	return fmt.Sprintf("%.1f mm²", mm2)
}

// AreaPerMetre formats an area per metre width, the spacing-mode result.
// Format: "565.0 mm²/m"
func AreaPerMetre(v float64) string {
	return fmt.Sprintf("%.1f mm²/m", v)
}

// Weight formats a linear weight. Format: "1.579 kg/m"
func Weight(kgm float64) string {
	return fmt.Sprintf("%.3f kg/m", kgm)
}

// WeightPerArea formats a weight per square metre, the spacing-mode
// weight result. Format: "4.440 kg/m²"
func WeightPerArea(v float64) string {
	return fmt.Sprintf("%.3f kg/m²", v)
}

// Load formats a force in kN. Format: "568 kN"
func Load(kn float64) string {
	return fmt.Sprintf("%.0f kN", kn)
}

// Strength formats a stress in MPa. Format: "1030 MPa"
func Strength(mpa float64) string {
	return fmt.Sprintf("%.0f MPa", mpa)
}

// Millimetres formats a length in mm with trailing zeros trimmed.
// Examples: "16 mm", "26.5 mm"
func Millimetres(mm float64) string {
	return trimZeros(fmt.Sprintf("%.1f", mm)) + " mm"
}

// Bare formats a length in mm without the unit suffix, for table columns
// whose header already names the unit.
func Bare(mm float64) string {
	return trimZeros(fmt.Sprintf("%.1f", mm))
}

// trimZeros removes a trailing ".0" style fraction from a fixed-point string.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
