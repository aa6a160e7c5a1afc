package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		hours int
		mins  int
	}{
		{"one hour", Input{Wood: 1, Complexity: 1, Size: 60, Tool: 1}, 1, 0},
		{"under an hour", Input{Wood: 1, Complexity: 1.5, Size: 30, Tool: 1}, 0, 45},
		{"tool divides", Input{Wood: 1.5, Complexity: 1.4, Size: 100, Tool: 2.2}, 1, 35},
		{"rounds half up", Input{Wood: 1, Complexity: 1, Size: 90.5, Tool: 1}, 1, 31},
		{"carries sixty", Input{Wood: 1, Complexity: 1, Size: 119.6, Tool: 1}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, r.Hours)
			assert.Equal(t, tt.mins, r.Minutes)
			assert.InDelta(t, tt.in.Size*tt.in.Complexity*tt.in.Wood/tt.in.Tool, r.Raw, 1e-9)
		})
	}
}

func TestComputeRejectsMissingInputs(t *testing.T) {
	for _, in := range []Input{
		{},
		{Wood: 1, Complexity: 1, Size: 10, Tool: 0},
		{Wood: -1, Complexity: 1, Size: 10, Tool: 1},
	} {
		_, err := Compute(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestResultText(t *testing.T) {
	r := Result{Hours: 2, Minutes: 5}
	assert.Equal(t, "Estimated Time: 2 hours 5 minutes", r.String())
	assert.Equal(t, "2h 5m", r.Short())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "1 (Simple)", ComplexityLabel(1.0))
	assert.Equal(t, "1 (Simple)", ComplexityLabel(1.2))
	assert.Equal(t, "1.4 (Medium)", ComplexityLabel(1.4))
	assert.Equal(t, "1.6 (Medium)", ComplexityLabel(1.6))
	assert.Equal(t, "1.8 (High)", ComplexityLabel(1.8))
	assert.Equal(t, "30 cm", SizeLabel(30))
}
