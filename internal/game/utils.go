package game

import (
	"math"

	"github.com/iburimskiy/time-estimator/internal/config"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// snapToStep rounds v to the nearest step of r and clamps it into the range. The
// result is trimmed to six decimals so 1.0+6*0.1 reads back as 1.6.
func snapToStep(v float64, r config.Range) float64 {
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	v = math.Max(r.Min, math.Min(r.Max, v))
	return math.Round(v*1e6) / 1e6
}

// truncate shortens s to n runes, marking the cut with "..".
func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(rs) <= n {
		return s
	}
	if n <= 2 {
		return string(rs[:n])
	}
	return string(rs[:n-2]) + ".."
}

// tail keeps the last n runes of s.
func tail(s string, n int) string {
	rs := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(rs) <= n {
		return s
	}
	return string(rs[len(rs)-n:])
}

// asciiOnly replaces runes the debug font cannot draw.
func asciiOnly(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r > 0x7e || (r < 0x20 && r != '\n') {
			out[i] = '?'
		}
	}
	return string(out)
}
