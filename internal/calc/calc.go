// Package calc implements the reinforcement quantity derivations.
//
// All functions are pure: given a catalogue bar and a numeric input they
// return derived quantities or a typed error. The package holds no state,
// so results are reproducible and trivially testable.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SteelDensity is the density of reinforcement steel in kg/m³,
// used to derive unit weight from cross-sectional area.
const SteelDensity = 7850.0

var (
	// ErrInvalidCount is returned when the bar count is below 1.
	ErrInvalidCount = errors.New("bar count must be at least 1")
	// ErrInvalidSpacing is returned when the c/c spacing is not positive.
	ErrInvalidSpacing = errors.New("spacing must be greater than zero")
)

// InputError wraps a rejected calculator input together with the raw text
// the user typed, so the UI can show it inline next to the field.
type InputError struct {
	Raw string
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Raw, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Bar is the slice of a catalogue row the calculator needs. Both rebar
// specs and prestressing bars reduce to it.
type Bar struct {
	AreaMM2   float64
	WeightKgM float64
}

// CountResult holds the count-mode derivation: N bars of one size.
type CountResult struct {
	Count          int
	TotalAreaMM2   float64
	TotalWeightKgM float64
}

// SpacingResult holds the spacing-mode derivation: bars at S mm centres
// over a one-metre width.
type SpacingResult struct {
	SpacingMM       float64
	AreaPerMetre    float64 // mm²/m
	WeightPerMetre2 float64 // kg/m²
}

// ByCount derives total area and weight for n bars.
func ByCount(bar Bar, n int) (CountResult, error) {
	if n < 1 {
		return CountResult{}, ErrInvalidCount
	}
	return CountResult{
		Count:          n,
		TotalAreaMM2:   bar.AreaMM2 * float64(n),
		TotalWeightKgM: bar.WeightKgM * float64(n),
	}, nil
}

// BySpacing derives area and weight per metre width for bars at s mm
// centre-to-centre spacing.
func BySpacing(bar Bar, s float64) (SpacingResult, error) {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return SpacingResult{}, ErrInvalidSpacing
	}
	perMetre := 1000.0 / s
	return SpacingResult{
		SpacingMM:       s,
		AreaPerMetre:    bar.AreaMM2 * perMetre,
		WeightPerMetre2: bar.WeightKgM * perMetre,
	}, nil
}

// ParseCount parses a count-mode input string. A failure is reported as
// an *InputError carrying the raw text.
func ParseCount(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &InputError{Raw: raw, Err: ErrInvalidCount}
	}
	if n < 1 {
		return 0, &InputError{Raw: raw, Err: ErrInvalidCount}
	}
	return n, nil
}

// ParseSpacing parses a spacing-mode input string in millimetres.
func ParseSpacing(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	s, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InputError{Raw: raw, Err: ErrInvalidSpacing}
	}
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, &InputError{Raw: raw, Err: ErrInvalidSpacing}
	}
	return s, nil
}

// BarArea returns the cross-sectional area in mm² of a circular bar of
// diameter d mm.
func BarArea(d float64) float64 {
	return math.Pi * d * d / 4.0
}

// BarWeight returns the unit weight in kg/m of a steel bar of diameter
// d mm.
func BarWeight(d float64) float64 {
	return BarArea(d) * SteelDensity * 1e-6
}
