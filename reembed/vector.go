package reembed

import "math"

// NormalizeVector scales v to unit length and returns the result as a
// new slice. A zero vector stays zero: there is no direction to keep.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := float32(math.Sqrt(sumSquares))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// IsZeroVector reports whether every element of v is zero. Chunks whose
// embedding batch failed during ingestion carry such placeholder vectors.
func IsZeroVector(v []float32) bool {
	for _, val := range v {
		if val != 0 {
			return false
		}
	}
	return true
}
