// Package util provides shared utility functions used across the application.
package util

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalize lowercases a string, trims it and collapses runs of whitespace
// into single spaces, so that metadata from different catalogue services
// compares cleanly.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SimilarityRatio scores how alike two strings are on a 0-100 scale, based
// on their Levenshtein distance after normalisation. 100 means identical.
func SimilarityRatio(a, b string) int {
	a, b = Normalize(a), Normalize(b)
	if a == b {
		return 100
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(distance)/float64(longest))))
}
