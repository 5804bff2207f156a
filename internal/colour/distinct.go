// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import "fmt"

// SelectDistinct picks the n mutually most distinct colours from palette:
// greedy max-min diversification over Euclidean RGB distance. The selection
// starts with the farthest pair and repeatedly adds the colour maximising its
// minimum distance to the colours already chosen. Ties always go to the
// lowest index in the palette's original order, so identical inputs produce
// identical subsets. The returned palette lists colours in selection order
// and carries a verdict computed by eval (nil eval uses the default
// configuration).
func SelectDistinct(palette *Palette, n int, eval *Evaluator) (*Palette, error) {
	if palette == nil || palette.Len() == 0 {
		return nil, fmt.Errorf("palette must contain at least one colour")
	}
	if n < 1 || n > palette.Len() {
		return nil, fmt.Errorf("%w: %d (palette has %d colours)", ErrInvalidSubsetSize, n, palette.Len())
	}

	colors := palette.Colors()
	chosen := make([]int, 0, n)
	switch {
	case len(colors) == 1:
		chosen = append(chosen, 0)
	case n == 1:
		a, _ := farthestPair(colors)
		chosen = append(chosen, a)
	default:
		a, b := farthestPair(colors)
		chosen = append(chosen, a, b)
	}

	picked := make([]bool, len(colors))
	for _, i := range chosen {
		picked[i] = true
	}

	for len(chosen) < n {
		best := -1
		bestDist := -1.0
		for i := range colors {
			if picked[i] {
				continue
			}
			nearest := Distance(colors[i], colors[chosen[0]])
			for _, j := range chosen[1:] {
				if d := Distance(colors[i], colors[j]); d < nearest {
					nearest = d
				}
			}
			if nearest > bestDist {
				bestDist = nearest
				best = i
			}
		}
		chosen = append(chosen, best)
		picked[best] = true
	}

	subset := make([]RGB, len(chosen))
	for i, idx := range chosen {
		subset[i] = colors[idx]
	}
	return NewPalette(subset, eval)
}

// farthestPair returns the indices of the two colours farthest apart, lowest
// index pair on ties.
func farthestPair(colors []RGB) (int, int) {
	bestA, bestB := 0, 1
	bestDist := -1.0
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			if d := Distance(colors[i], colors[j]); d > bestDist {
				bestDist = d
				bestA, bestB = i, j
			}
		}
	}
	return bestA, bestB
}
