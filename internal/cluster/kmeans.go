// Package cluster groups careers by skill profile with seeded k-means. The
// index is an auxiliary view; ranking does not depend on it.
package cluster

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Defaults for Build
const (
	DefaultK             = 10
	DefaultSeed          = 42
	DefaultMaxIterations = 300
)

// InsufficientDataError is returned when there is nothing to cluster.
type InsufficientDataError struct {
	Points int
	K      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: cannot form %d clusters from %d points", e.K, e.Points)
}

// Index maps each input point to a cluster id in [0, K()).
type Index struct {
	assignments []int
	centroids   [][]float64
	members     [][]int
	iterations  int
}

// Options tunes Build.
type Options struct {
	K             int
	Seed          uint64
	MaxIterations int
}

// Build clusters vectors with k-means using k-means++ seeding from a PCG
// source, so identical input yields identical assignments. When there are
// fewer points than k, k is reduced to the number of points.
func Build(vectors [][]float64, opts Options) (*Index, error) {
	k := opts.K
	if k <= 0 {
		k = DefaultK
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	if len(vectors) == 0 {
		return nil, &InsufficientDataError{Points: 0, K: k}
	}
	if len(vectors) < k {
		k = len(vectors)
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	centroids := seedCentroids(vectors, k, rng)

	assignments := make([]int, len(vectors))
	for i := range assignments {
		assignments[i] = -1
	}

	iter := 0
	for iter < maxIter {
		iter++

		// 1. Assign each point to its nearest centroid
		changed := false
		for i, v := range vectors {
			c := nearest(v, centroids)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		// 2. Move centroids to the mean of their members
		updateCentroids(vectors, assignments, centroids)
	}

	members := make([][]int, k)
	for i, c := range assignments {
		members[c] = append(members[c], i)
	}

	return &Index{
		assignments: assignments,
		centroids:   centroids,
		members:     members,
		iterations:  iter,
	}, nil
}

// seedCentroids picks k initial centroids with k-means++: each next centroid
// is sampled with probability proportional to its squared distance from the
// nearest centroid chosen so far.
func seedCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(vectors[rng.IntN(len(vectors))]))

	dist := make([]float64, len(vectors))
	for len(centroids) < k {
		total := 0.0
		for i, v := range vectors {
			d := squaredDistance(v, centroids[nearest(v, centroids)])
			dist[i] = d
			total += d
		}

		var next int
		if total == 0 {
			// every point coincides with a centroid; fall back to uniform choice
			next = rng.IntN(len(vectors))
		} else {
			target := rng.Float64() * total
			for i, d := range dist {
				if d == 0 {
					continue
				}
				next = i
				target -= d
				if target <= 0 {
					break
				}
			}
		}
		centroids = append(centroids, clone(vectors[next]))
	}
	return centroids
}

// updateCentroids recomputes centroids in place. A cluster that lost all its
// members keeps its previous centroid.
func updateCentroids(vectors [][]float64, assignments []int, centroids [][]float64) {
	dim := len(vectors[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}

	for i, v := range vectors {
		c := assignments[i]
		counts[c]++
		for d, x := range v {
			sums[c][d] += x
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// nearest returns the index of the closest centroid; ties go to the lowest index.
func nearest(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(v, centroid); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// K returns the number of clusters actually formed.
func (x *Index) K() int {
	return len(x.centroids)
}

// Len returns the number of clustered points.
func (x *Index) Len() int {
	return len(x.assignments)
}

// Assignment returns the cluster id of point i.
func (x *Index) Assignment(i int) (int, error) {
	if i < 0 || i >= len(x.assignments) {
		return 0, fmt.Errorf("point %d out of range [0,%d)", i, len(x.assignments))
	}
	return x.assignments[i], nil
}

// Assignments returns a copy of all cluster ids in input order.
func (x *Index) Assignments() []int {
	out := make([]int, len(x.assignments))
	copy(out, x.assignments)
	return out
}

// Members returns the point indices in cluster c, in input order.
func (x *Index) Members(c int) []int {
	if c < 0 || c >= len(x.members) {
		return nil
	}
	out := make([]int, len(x.members[c]))
	copy(out, x.members[c])
	return out
}

// Iterations reports how many assignment passes ran.
func (x *Index) Iterations() int {
	return x.iterations
}
