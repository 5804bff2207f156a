package util

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Kid A", want: "kid a"},
		{name: "surrounding whitespace", input: "  Amber  ", want: "amber"},
		{name: "collapsed whitespace", input: "Boards  of\tCanada", want: "boards of canada"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "Radiohead - Kid A", b: "Radiohead - Kid A", want: 100},
		{name: "case and spacing ignored", a: "radiohead -  kid a", b: "Radiohead - Kid A", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "disjoint", a: "abcd", b: "wxyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("SimilarityRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	// A one-character slip in a long title must still clear a high match
	// threshold.
	if got := SimilarityRatio("Portishead - Dummy", "Portishead - Dumny"); got < 90 {
		t.Errorf("SimilarityRatio() = %d, want >= 90", got)
	}
}
