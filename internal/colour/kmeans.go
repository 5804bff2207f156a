// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jmylchreest/albumtint/internal/security"
)

// ClustererConfig configures the clustering engine.
type ClustererConfig struct {
	// MaxIterations caps the refinement passes of a single run.
	MaxIterations int

	// Restarts is the number of independently seeded runs to take the best of.
	Restarts int
}

// DefaultClustererConfig returns the default clustering configuration.
func DefaultClustererConfig() ClustererConfig {
	return ClustererConfig{
		MaxIterations: 20,
		Restarts:      3,
	}
}

// Validate checks the configuration for usable values.
func (c ClustererConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", c.Restarts)
	}
	return nil
}

// Clusterer partitions colour samples into k representative centroids using
// k-means over Euclidean distance in RGB space.
type Clusterer struct {
	config ClustererConfig
}

// NewClusterer creates a Clusterer with the given configuration.
func NewClusterer(config ClustererConfig) *Clusterer {
	return &Clusterer{config: config}
}

// ClusterResult holds the outcome of one clustering run. Centroid order is
// cluster label order, not a canonical one.
type ClusterResult struct {
	K         int
	Centroids []RGB
	SSD       float64
}

// Cluster partitions sample into exactly k non-empty clusters and returns
// their centroids with the sum of squared distances of every pixel to its
// assigned centroid. A fixed (sample, k, seed) input always reproduces the
// same result: initialisation draws from a rand source derived from seed, and
// refinement runs until assignments stabilise or the iteration cap is hit.
func (c *Clusterer) Cluster(sample *Sample, k int, seed int64) (*ClusterResult, error) {
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("clusterer config: %w", err)
	}
	if sample == nil || sample.Len() == 0 {
		return nil, fmt.Errorf("sample must contain at least one pixel")
	}
	if k < 1 || k > sample.Len() {
		return nil, fmt.Errorf("%w: %d (sample has %d pixels)", ErrInvalidK, k, sample.Len())
	}
	if k > sample.Distinct() {
		return nil, fmt.Errorf("%w: %d requested, %d available", ErrInsufficientColors, k, sample.Distinct())
	}

	points, weights := samplePoints(sample)
	best := c.clusterPoints(points, weights, k, seed)
	return newClusterResult(k, best), nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// runResult is the float-precision outcome of one clustering run. The public
// ClusterResult is derived from it; the float form is kept so later runs can
// be repaired against it without rounding noise.
type runResult struct {
	centroids   []point3D
	assignments []int
	ssd         float64
}

// samplePoints converts a sample into weighted points, one per distinct
// colour, in first-appearance order.
func samplePoints(sample *Sample) ([]point3D, []float64) {
	points := make([]point3D, sample.Distinct())
	weights := make([]float64, sample.Distinct())
	for i, c := range sample.colors {
		points[i] = point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
		weights[i] = float64(sample.counts[i])
	}
	return points, weights
}

// newClusterResult rounds a run's float centroids to 8-bit colours. SSD stays
// measured against the float centroids the assignment actually used.
func newClusterResult(k int, run runResult) *ClusterResult {
	centroids := make([]RGB, len(run.centroids))
	for i, c := range run.centroids {
		centroids[i] = RGB{
			R: security.SafeUint8(int(math.Round(c.R))),
			G: security.SafeUint8(int(math.Round(c.G))),
			B: security.SafeUint8(int(math.Round(c.B))),
		}
	}
	return &ClusterResult{K: k, Centroids: centroids, SSD: run.ssd}
}

// clusterPoints runs the configured number of restarts and keeps the
// lowest-SSD outcome. Restart r derives its rand source from seed+r, so the
// whole procedure is reproducible from a single seed.
func (c *Clusterer) clusterPoints(points []point3D, weights []float64, k int, seed int64) runResult {
	var best runResult
	for r := 0; r < c.config.Restarts; r++ {
		rng := rand.New(rand.NewSource(seed + int64(r)))
		centroids := initCentroids(points, weights, k, rng)
		assignments := make([]int, len(points))
		for i := range assignments {
			assignments[i] = -1
		}
		candidate := c.refine(points, weights, centroids, assignments)
		if r == 0 || candidate.ssd < best.ssd {
			best = candidate
		}
	}
	return best
}

// initCentroids seeds k centroids with the k-means++ scheme: the first pick
// is weighted by pixel count, every further pick by weighted squared distance
// to the nearest already-chosen centroid. Zero-distance points (existing
// centroids) are never picked again.
func initCentroids(points []point3D, weights []float64, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	target := rng.Float64() * totalWeight
	cumulative := 0.0
	first := len(points) - 1
	for i, w := range weights {
		cumulative += w
		if cumulative >= target {
			first = i
			break
		}
	}
	centroids = append(centroids, points[first])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				if dist := point.distance(centroid); dist < minDist {
					minDist = dist
				}
			}
			distances[i] = weights[i] * minDist * minDist
			totalDistance += distances[i]
		}
		if totalDistance == 0 {
			// Unreachable while k never exceeds the distinct colour count.
			break
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		next := -1
		for i, dist := range distances {
			if dist <= 0 {
				continue
			}
			cumulative += dist
			next = i
			if cumulative >= target {
				break
			}
		}
		centroids = append(centroids, points[next])
	}

	return centroids
}

// refine runs Lloyd iterations from the given starting centroids until the
// assignment stabilises or the iteration cap is reached. Assignments must
// arrive initialised to -1 for a cold start.
func (c *Clusterer) refine(points []point3D, weights []float64, centroids []point3D, assignments []int) runResult {
	k := len(centroids)

	for iter := 0; ; iter++ {
		changed := assignPoints(points, centroids, assignments)
		if iter >= c.config.MaxIterations {
			break
		}
		var relocated bool
		centroids, relocated = recalculateCentroids(points, weights, assignments, centroids)
		if changed == 0 && !relocated {
			break
		}
	}

	// A relocation can be undone by an exact tie against a colocated
	// centroid; repeat until every cluster holds a point.
	for range centroids {
		if !hasEmptyCluster(assignments, k) {
			break
		}
		centroids, _ = recalculateCentroids(points, weights, assignments, centroids)
		assignPoints(points, centroids, assignments)
	}

	return runResult{
		centroids:   centroids,
		assignments: assignments,
		ssd:         weightedSSD(points, weights, assignments, centroids),
	}
}

// assignPoints moves every point to its nearest centroid and reports how many
// assignments changed. Ties go to the lower centroid index.
func assignPoints(points []point3D, centroids []point3D, assignments []int) int {
	changed := 0
	for i, point := range points {
		nearest := nearestCentroid(point, centroids)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// nearestCentroid finds the index of the nearest centroid to a point.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recomputes each centroid as the weighted mean of its
// assigned points. An empty cluster is relocated onto the point farthest from
// its assigned centroid, drawn from clusters that can spare one, so exactly k
// non-empty clusters survive whenever the sample has at least k distinct
// colours. Relocation mutates assignments; the second return value reports
// whether any took place.
func recalculateCentroids(points []point3D, weights []float64, assignments []int, centroids []point3D) ([]point3D, bool) {
	k := len(centroids)
	sums := make([]point3D, k)
	totals := make([]float64, k)
	sizes := make([]int, k)
	for i, point := range points {
		cluster := assignments[i]
		w := weights[i]
		sums[cluster].R += point.R * w
		sums[cluster].G += point.G * w
		sums[cluster].B += point.B * w
		totals[cluster] += w
		sizes[cluster]++
	}

	relocated := false
	for cluster := 0; cluster < k; cluster++ {
		if sizes[cluster] > 0 {
			continue
		}
		donor := -1
		donorDist := -1.0
		for i, point := range points {
			if sizes[assignments[i]] < 2 {
				continue
			}
			if d := point.distance(centroids[assignments[i]]); d > donorDist {
				donorDist = d
				donor = i
			}
		}
		if donor < 0 {
			continue
		}
		from := assignments[donor]
		w := weights[donor]
		sums[from].R -= points[donor].R * w
		sums[from].G -= points[donor].G * w
		sums[from].B -= points[donor].B * w
		totals[from] -= w
		sizes[from]--
		assignments[donor] = cluster
		sums[cluster] = point3D{R: points[donor].R * w, G: points[donor].G * w, B: points[donor].B * w}
		totals[cluster] = w
		sizes[cluster] = 1
		relocated = true
	}

	next := make([]point3D, k)
	for i := range next {
		if totals[i] > 0 {
			next[i] = point3D{
				R: sums[i].R / totals[i],
				G: sums[i].G / totals[i],
				B: sums[i].B / totals[i],
			}
		} else {
			next[i] = centroids[i]
		}
	}
	return next, relocated
}

// weightedSSD sums the squared distance of every pixel to its assigned
// centroid.
func weightedSSD(points []point3D, weights []float64, assignments []int, centroids []point3D) float64 {
	ssd := 0.0
	for i, point := range points {
		d := point.distance(centroids[assignments[i]])
		ssd += weights[i] * d * d
	}
	return ssd
}

// hasEmptyCluster reports whether any of the k clusters holds no point.
func hasEmptyCluster(assignments []int, k int) bool {
	seen := make([]bool, k)
	for _, a := range assignments {
		seen[a] = true
	}
	for _, s := range seen {
		if !s {
			return true
		}
	}
	return false
}
