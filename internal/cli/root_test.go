// Package cli provides the command-line interface for albumtint.
package cli

import "testing"

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name string
		flag string
		want string
	}{
		{name: "american colors", flag: "colors", want: "colours"},
		{name: "american max-colors", flag: "max-colors", want: "max-colours"},
		{name: "british no-colour", flag: "no-colour", want: "no-color"},
		{name: "canonical passes through", flag: "colours", want: "colours"},
		{name: "unrelated flag", flag: "artist", want: "artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeFlags(nil, tt.flag); string(got) != tt.want {
				t.Errorf("normalizeFlags(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}
