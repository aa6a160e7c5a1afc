// Package estimate turns the four carving inputs into a duration.
package estimate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a factor is missing or not positive.
var ErrInvalidInput = errors.New("estimate: all inputs must be positive")

// Input holds the multipliers picked in the form. Size is in centimetres.
type Input struct {
	Wood       float64
	Complexity float64
	Size       float64
	Tool       float64
}

// Result is a duration split into whole hours and rounded minutes.
type Result struct {
	Hours   int
	Minutes int
	Raw     float64 // minutes, unrounded
}

// Compute returns size*complexity*wood/tool minutes.
func Compute(in Input) (Result, error) {
	for _, v := range []float64{in.Wood, in.Complexity, in.Size, in.Tool} {
		if !(v > 0) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: %+v", ErrInvalidInput, in)
		}
	}
	base := in.Size * in.Complexity * in.Wood / in.Tool
	hours := int(math.Floor(base / 60))
	minutes := int(math.Round(math.Mod(base, 60)))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return Result{Hours: hours, Minutes: minutes, Raw: base}, nil
}

func (r Result) String() string {
	return fmt.Sprintf("Estimated Time: %d hours %d minutes", r.Hours, r.Minutes)
}

// Short renders the result as "2h 5m".
func (r Result) Short() string {
	return fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
}

// ComplexityLabel describes a complexity multiplier the way the slider shows it.
func ComplexityLabel(v float64) string {
	switch {
	case v <= 1.2:
		return "1 (Simple)"
	case v <= 1.6:
		return fmt.Sprintf("%.1f (Medium)", v)
	default:
		return fmt.Sprintf("%.1f (High)", v)
	}
}

// SizeLabel renders a size slider value.
func SizeLabel(v float64) string {
	return fmt.Sprintf("%.0f cm", v)
}
