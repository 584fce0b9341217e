package index

import "math"

// distance returns a value where smaller means closer, for every space.
func distance(a, b []float32, space SpaceType) float32 {
	switch space {
	case IPSpace:
		// inner product, negated so that larger products rank first
		var dot float32
		for i := range a {
			dot += a[i] * b[i]
		}
		return -dot
	case CosSpace:
		var dot, na, nb float32
		for i := range a {
			dot += a[i] * b[i]
			na += a[i] * a[i]
			nb += b[i] * b[i]
		}
		if na == 0 || nb == 0 {
			return 1.0 // maximal distance
		}
		return 1 - dot/float32(math.Sqrt(float64(na*nb)))
	default: // L2
		var sum float32
		for i := range a {
			diff := a[i] - b[i]
			sum += diff * diff
		}
		return sum
	}
}
