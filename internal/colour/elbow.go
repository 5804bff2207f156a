// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import (
	"fmt"
	"math"
)

// OptimalKResult holds one clustering run per candidate k and the elbow
// choice among them.
type OptimalKResult struct {
	Results map[int]*ClusterResult
	BestK   int
}

// SelectOptimal clusters sample once per k from 1 to maxColors (capped at the
// number of distinct colours) and picks the elbow of the SSD-versus-k curve:
// the k whose curve point lies farthest from the straight line joining the
// curve's first and last points. Ties go to the smaller k.
func (c *Clusterer) SelectOptimal(sample *Sample, maxColors int, seed int64) (*OptimalKResult, error) {
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("clusterer config: %w", err)
	}
	if maxColors < 1 {
		return nil, fmt.Errorf("%w: max colours %d", ErrInvalidK, maxColors)
	}
	if sample == nil || sample.Len() == 0 {
		return nil, fmt.Errorf("sample must contain at least one pixel")
	}

	points, weights := samplePoints(sample)
	limit := min(maxColors, sample.Distinct())

	// Runs are sequential and ascending in k: when an independent run lands
	// in a worse local optimum than its predecessor, it is replaced by a
	// split of the predecessor, which keeps the SSD curve non-increasing.
	results := make(map[int]*ClusterResult, limit)
	runs := make([]runResult, 0, limit)
	for k := 1; k <= limit; k++ {
		run := c.clusterPoints(points, weights, k, seed)
		if k > 1 && run.ssd > runs[k-2].ssd {
			run = splitWorstCluster(points, weights, runs[k-2])
		}
		runs = append(runs, run)
		results[k] = newClusterResult(k, run)
	}

	return &OptimalKResult{Results: results, BestK: elbowK(runs)}, nil
}

// splitWorstCluster derives a k-centroid solution from a (k-1)-centroid run
// by promoting the farthest point of the highest-SSD splittable cluster to a
// centroid of its own and reassigning only within that cluster. The derived
// solution can never carry a higher SSD than the run it came from. A
// splittable cluster (two or more distinct points) always exists while the
// candidate k stays within the distinct colour count.
func splitWorstCluster(points []point3D, weights []float64, prev runResult) runResult {
	k := len(prev.centroids)

	cost := make([]float64, k)
	size := make([]int, k)
	for i, point := range points {
		d := point.distance(prev.centroids[prev.assignments[i]])
		cost[prev.assignments[i]] += weights[i] * d * d
		size[prev.assignments[i]]++
	}

	split := -1
	for cluster := 0; cluster < k; cluster++ {
		if size[cluster] < 2 {
			continue
		}
		if split < 0 || cost[cluster] > cost[split] {
			split = cluster
		}
	}

	assignments := make([]int, len(points))
	copy(assignments, prev.assignments)
	centroids := make([]point3D, k+1)
	copy(centroids, prev.centroids)

	far := -1
	farDist := -1.0
	for i, point := range points {
		if assignments[i] != split {
			continue
		}
		if d := point.distance(prev.centroids[split]); d > farDist {
			farDist = d
			far = i
		}
	}
	centroids[k] = points[far]

	// Points of the split cluster pick the closer of the old and new centroid.
	for i, point := range points {
		if assignments[i] != split {
			continue
		}
		if point.distance(centroids[k]) < point.distance(centroids[split]) {
			assignments[i] = k
		}
	}

	// If the old centroid lost every point, hand it the point now farthest
	// from the new centroid so both halves stay populated.
	empty := true
	for _, a := range assignments {
		if a == split {
			empty = false
			break
		}
	}
	if empty {
		back := -1
		backDist := -1.0
		for i, point := range points {
			if assignments[i] != k {
				continue
			}
			if d := point.distance(centroids[k]); d > backDist {
				backDist = d
				back = i
			}
		}
		assignments[back] = split
		centroids[split] = points[back]
	}

	return runResult{
		centroids:   centroids,
		assignments: assignments,
		ssd:         weightedSSD(points, weights, assignments, centroids),
	}
}

// elbowK locates the elbow of the SSD curve: the k maximising perpendicular
// distance from the curve point (k, ssd) to the straight line through the
// first and last curve points. Ties go to the smaller k.
func elbowK(runs []runResult) int {
	n := len(runs)
	if n == 1 {
		return 1
	}

	x1, y1 := 1.0, runs[0].ssd
	x2, y2 := float64(n), runs[n-1].ssd
	dx, dy := x2-x1, y2-y1
	norm := math.Sqrt(dx*dx + dy*dy)

	bestK, bestDist := 1, -1.0
	for i, run := range runs {
		x, y := float64(i+1), run.ssd
		dist := math.Abs(dy*x-dx*y+x2*y1-y2*x1) / norm
		if dist > bestDist {
			bestDist = dist
			bestK = i + 1
		}
	}
	return bestK
}
