package analysis

import "math"

// CosineSimilarity returns the cosine of the angle between two frequency
// vectors, in [0,1]. It is 0 when either vector is empty.
func CosineSimilarity(a, b FrequencyVector) float64 {
	magA := a.squaredNorm()
	magB := b.squaredNorm()
	if magA == 0 || magB == 0 {
		return 0
	}

	// Terms absent from a contribute nothing to the dot product, so walking
	// the smaller vector covers the whole union.
	small, large := a, b
	if b.Len() < a.Len() {
		small, large = b, a
	}
	var dot int64
	for term, n := range small.counts {
		dot += int64(n) * int64(large.Count(term))
	}

	sim := float64(dot) / math.Sqrt(float64(magA)*float64(magB))
	return math.Min(sim, 1)
}
