package similarity

import "math"

// Cosine returns dot(a, b) / (|a| * |b|). Both vectors must have equal length.
// A zero-norm input produces NaN.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
