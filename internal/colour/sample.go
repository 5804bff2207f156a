// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import "fmt"

// Sample is an ordered, non-empty collection of pixel colours prepared for
// clustering. Colours are held deduplicated with per-colour pixel counts;
// distinct colours keep their order of first appearance. A Sample is
// immutable once built.
type Sample struct {
	colors []RGB
	counts []int
	total  int
}

// NewSample builds a sample from an ordered sequence of pixel colours.
// The sequence must contain at least one pixel.
func NewSample(pixels []RGB) (*Sample, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("sample must contain at least one pixel")
	}

	s := &Sample{total: len(pixels)}
	index := make(map[RGB]int, len(pixels))
	for _, px := range pixels {
		if i, ok := index[px]; ok {
			s.counts[i]++
			continue
		}
		index[px] = len(s.colors)
		s.colors = append(s.colors, px)
		s.counts = append(s.counts, 1)
	}
	return s, nil
}

// Len returns the total number of pixels the sample represents.
func (s *Sample) Len() int {
	return s.total
}

// Distinct returns the number of distinct colours in the sample.
func (s *Sample) Distinct() int {
	return len(s.colors)
}

// Colors returns a copy of the distinct colours in first-appearance order.
func (s *Sample) Colors() []RGB {
	out := make([]RGB, len(s.colors))
	copy(out, s.colors)
	return out
}

// Count returns the number of pixels carrying the i-th distinct colour.
func (s *Sample) Count(i int) int {
	if i < 0 || i >= len(s.counts) {
		return 0
	}
	return s.counts[i]
}
