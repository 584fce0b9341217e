package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	pkgerrors "chatbotht/pkg/errors"
)

const (
	DefaultSeed    = 42
	DefaultMaxIter = 300
	DefaultNInit   = 10
	DefaultTol     = 1e-4
)

// Options controls a k-means fit.
type Options struct {
	Seed    int64
	MaxIter int
	NInit   int
	Tol     float64
}

// DefaultOptions returns the options used by the chatbot.
func DefaultOptions() Options {
	return Options{
		Seed:    DefaultSeed,
		MaxIter: DefaultMaxIter,
		NInit:   DefaultNInit,
		Tol:     DefaultTol,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.NInit <= 0 {
		o.NInit = DefaultNInit
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	return o
}

// KMeans is a fitted model: K centroids in the vectorizer's feature space.
type KMeans struct {
	K          int
	Seed       int64
	Centroids  [][]float64
	Inertia    float64
	Iterations int
}

// FitKMeans clusters points into k groups. Every random choice comes from a
// single source seeded with opts.Seed, so equal inputs give equal models.
func FitKMeans(points [][]float64, k int, opts Options) (*KMeans, error) {
	if len(points) == 0 {
		return nil, pkgerrors.ErrEmptyCorpus
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", pkgerrors.ErrInvalidClusterNum, k)
	}
	if distinct := countDistinct(points); k > distinct {
		return nil, fmt.Errorf("%w: k=%d exceeds %d distinct samples", pkgerrors.ErrInvalidClusterNum, k, distinct)
	}
	opts = opts.withDefaults()

	rng := rand.New(rand.NewSource(opts.Seed))
	tol := opts.Tol * meanVariance(points)

	var best *KMeans
	for run := 0; run < opts.NInit; run++ {
		centroids := initPlusPlus(points, k, rng)
		centroids, inertia, iters := lloyd(points, centroids, opts.MaxIter, tol)
		if best == nil || inertia < best.Inertia {
			best = &KMeans{
				K:          k,
				Seed:       opts.Seed,
				Centroids:  centroids,
				Inertia:    inertia,
				Iterations: iters,
			}
		}
	}
	return best, nil
}

// Predict returns the index of the centroid nearest to x by squared
// Euclidean distance. Ties go to the lowest index.
func (m *KMeans) Predict(x []float64) int {
	idx, _ := nearest(x, m.Centroids)
	return idx
}

// initPlusPlus picks k starting centroids, each new one sampled with
// probability proportional to its squared distance from the chosen set.
func initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = sqDist(p, centroids[0])
	}

	for len(centroids) < k {
		var total float64
		for _, d := range dist {
			total += d
		}
		r := rng.Float64() * total
		chosen := -1
		var cum float64
		for i, d := range dist {
			if d == 0 {
				continue
			}
			chosen = i
			cum += d
			if cum > r {
				break
			}
		}
		// chosen stays -1 only if every point coincides with a centroid,
		// which the distinct-sample check rules out.
		c := clone(points[chosen])
		centroids = append(centroids, c)
		for i, p := range points {
			if d := sqDist(p, c); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centroids
}

// lloyd refines centroids until assignments stop changing, the total squared
// centroid shift drops to tol, or maxIter is reached.
func lloyd(points, centroids [][]float64, maxIter int, tol float64) ([][]float64, float64, int) {
	k := len(centroids)
	dim := len(points[0])
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	iter := 0
	for iter < maxIter {
		iter++
		changed := false
		for i, p := range points {
			idx, _ := nearest(p, centroids)
			if idx != labels[i] {
				labels[i] = idx
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}

		next := make([][]float64, k)
		for c := range next {
			if counts[c] == 0 {
				// Empty cluster: move it onto the worst-fitting point.
				far := farthestPoint(points, labels, centroids)
				next[c] = clone(points[far])
				labels[far] = c
				continue
			}
			next[c] = make([]float64, dim)
			for j := range next[c] {
				next[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		var shift float64
		for c := range next {
			shift += sqDist(next[c], centroids[c])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	var inertia float64
	for _, p := range points {
		_, d := nearest(p, centroids)
		inertia += d
	}
	return centroids, inertia, iter
}

func nearest(x []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(x, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func farthestPoint(points [][]float64, labels []int, centroids [][]float64) int {
	far, farDist := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centroids[labels[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func meanVariance(points [][]float64) float64 {
	dim := len(points[0])
	if dim == 0 {
		return 0
	}
	n := float64(len(points))
	var total float64
	for j := 0; j < dim; j++ {
		var mean float64
		for _, p := range points {
			mean += p[j]
		}
		mean /= n
		var v float64
		for _, p := range points {
			d := p[j] - mean
			v += d * d
		}
		total += v / n
	}
	return total / float64(dim)
}

func countDistinct(points [][]float64) int {
	seen := make(map[string]struct{}, len(points))
	var sb strings.Builder
	for _, p := range points {
		sb.Reset()
		for _, v := range p {
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			sb.WriteByte(',')
		}
		seen[sb.String()] = struct{}{}
	}
	return len(seen)
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
