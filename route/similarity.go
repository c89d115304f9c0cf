package route

import "math"

// dotProduct computes the dot product of two vectors.
// Returns 0 if vectors have different lengths.
func dotProduct(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// magnitude computes the L2 norm of a vector.
func magnitude(v []float32) float64 {
	return math.Sqrt(float64(dotProduct(v, v)))
}

// cosineSimilarity computes cosine similarity between two vectors using
// pre-computed magnitudes. Returns 0 if either magnitude is zero, so a
// degenerate all-zero embedding can never win a route.
func cosineSimilarity(a, b []float32, magA, magB float64) float64 {
	if magA == 0 || magB == 0 {
		return 0
	}
	return float64(dotProduct(a, b)) / (magA * magB)
}
