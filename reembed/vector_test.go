package reembed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{
			name:     "unit vector unchanged",
			input:    []float32{1.0, 0.0, 0.0},
			expected: []float32{1.0, 0.0, 0.0},
		},
		{
			name:     "scales 3-4-5 triangle",
			input:    []float32{3.0, 4.0},
			expected: []float32{0.6, 0.8},
		},
		{
			name:     "negative components",
			input:    []float32{-1.0, 1.0},
			expected: []float32{-1.0 / float32(math.Sqrt2), 1.0 / float32(math.Sqrt2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeVector(tt.input)
			require.Len(t, result, len(tt.expected))
			for i := range result {
				assert.InDelta(t, tt.expected[i], result[i], 1e-6, "element %d", i)
			}

			var sumSquares float64
			for _, v := range result {
				sumSquares += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-6, "unit magnitude")
		})
	}
}

func TestNormalizeVectorZeroStaysZero(t *testing.T) {
	result := NormalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, result)
}

func TestNormalizeVectorEmpty(t *testing.T) {
	assert.Empty(t, NormalizeVector(nil))
}

func TestIsZeroVector(t *testing.T) {
	assert.True(t, IsZeroVector([]float32{0, 0, 0}))
	assert.True(t, IsZeroVector(nil))
	assert.False(t, IsZeroVector([]float32{0, 0.001, 0}))
}
