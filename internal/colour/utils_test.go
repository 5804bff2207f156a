// Package colour provides utility functions for colour comparison and analysis.
package colour

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    RGB
		b    RGB
		want float64
	}{
		{name: "identical", a: RGB{R: 10, G: 20, B: 30}, b: RGB{R: 10, G: 20, B: 30}, want: 0},
		{name: "pythagorean triple", a: RGB{}, b: RGB{R: 3, G: 4}, want: 5},
		{name: "single channel", a: RGB{R: 100}, b: RGB{R: 240}, want: 140},
		{name: "black to white", a: RGB{}, b: RGB{R: 255, G: 255, B: 255}, want: 255 * math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if forward, backward := Distance(tt.a, tt.b), Distance(tt.b, tt.a); forward != backward {
				t.Errorf("Distance() is asymmetric: %v vs %v", forward, backward)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want float64
	}{
		{name: "black", c: RGB{}, want: 0},
		{name: "white", c: RGB{R: 255, G: 255, B: 255}, want: 1},
		{name: "red", c: RGB{R: 255}, want: 0.2126},
		{name: "green", c: RGB{G: 255}, want: 0.7152},
		{name: "blue", c: RGB{B: 255}, want: 0.0722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.c); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLuminanceMonotonicOnGreys(t *testing.T) {
	prev := -1.0
	for _, v := range []uint8{0, 10, 64, 128, 200, 255} {
		lum := Luminance(RGB{R: v, G: v, B: v})
		if lum <= prev {
			t.Fatalf("Luminance(grey %d) = %v, not above %v", v, lum, prev)
		}
		prev = lum
	}
}
