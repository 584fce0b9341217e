package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		space    SpaceType
		expected float32
	}{
		{"L2 identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, L2Space, 0},
		{"L2 different vectors", []float32{1, 2, 3}, []float32{4, 5, 6}, L2Space, 27},
		{"IP identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, IPSpace, -14},
		{"IP orthogonal vectors", []float32{1, 0}, []float32{0, 1}, IPSpace, 0},
		{"Cosine identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, CosSpace, 0},
		{"Cosine orthogonal vectors", []float32{1, 0}, []float32{0, 1}, CosSpace, 1},
		{"Cosine opposite vectors", []float32{1, 1}, []float32{-1, -1}, CosSpace, 2},
		{"Cosine zero vector", []float32{0, 0}, []float32{1, 1}, CosSpace, 1},
		{"Unknown space falls back to L2", []float32{1, 2}, []float32{3, 4}, "unknown", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := distance(tt.a, tt.b, tt.space)
			if math.Abs(float64(result-tt.expected)) > 1e-6 {
				t.Errorf("distance(%v, %v, %v) = %f, want %f", tt.a, tt.b, tt.space, result, tt.expected)
			}
		})
	}
}

func TestParseSpace(t *testing.T) {
	for _, name := range []string{"l2", "ip", "cos"} {
		s, err := ParseSpace(name)
		require.NoError(t, err)
		assert.Equal(t, SpaceType(name), s)
	}
	_, err := ParseSpace("hamming")
	assert.Error(t, err)
}

func BenchmarkDistance(b *testing.B) {
	a := make([]float32, 1536)
	c := make([]float32, 1536)
	for i := range a {
		a[i] = float32(i)
		c[i] = float32(i + 1)
	}
	for _, space := range []SpaceType{L2Space, IPSpace, CosSpace} {
		b.Run(string(space), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				distance(a, c, space)
			}
		})
	}
}
