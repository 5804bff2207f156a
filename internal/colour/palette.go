// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical hex form of the colour: "#" followed by exactly
// six uppercase hex digits (e.g., "#1A2B3C"). This is the only serialised
// form of a colour; ParseHex reverses it exactly.
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses a "#RRGGBB" string into an RGB colour. Hex digits are
// accepted in either case; the canonical form produced by Hex is uppercase.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Palette is an ordered, duplicate-free collection of colours together with
// the colour-vision verdict computed when the palette was built. The verdict
// is cached for the palette's lifetime and never recomputed implicitly.
type Palette struct {
	colors   []RGB
	friendly bool
}

// NewPalette creates a Palette from the given colours. Duplicate colours are
// rejected. The colour-vision verdict is computed once here by eval; a nil
// eval uses an evaluator with the default configuration.
func NewPalette(colors []RGB, eval *Evaluator) (*Palette, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("palette must contain at least one colour")
	}
	seen := make(map[RGB]bool, len(colors))
	for _, c := range colors {
		if seen[c] {
			return nil, fmt.Errorf("duplicate colour in palette: %s", c.Hex())
		}
		seen[c] = true
	}
	if eval == nil {
		eval = NewEvaluator(DefaultEvaluatorConfig())
	}

	p := &Palette{
		colors:   make([]RGB, len(colors)),
		friendly: eval.Evaluate(colors).Friendly,
	}
	copy(p.colors, colors)
	return p, nil
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Friendly reports whether the palette was distinguishable under all
// simulated colour-vision deficiencies at build time.
func (p *Palette) Friendly() bool {
	return p.friendly
}

// Colors returns a copy of the palette colours in order.
func (p *Palette) Colors() []RGB {
	out := make([]RGB, len(p.colors))
	copy(out, p.colors)
	return out
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.colors) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.colors))
	}
	return p.colors[index], nil
}

// Hexes returns the palette colours as canonical hex strings
// (e.g., ["#1A2B3C", "#4D5E6F"]).
func (p *Palette) Hexes() []string {
	hexes := make([]string, len(p.colors))
	for i, c := range p.colors {
		hexes[i] = c.Hex()
	}
	return hexes
}

// All returns an iterator over all colours in the palette using Go 1.25 range over functions.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count    int         `json:"count"`
	Friendly bool        `json:"is_colorblind_friendly"`
	Colors   []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.colors))
	for i, c := range p.colors {
		colors[i] = ColorJSON{
			Hex: c.Hex(),
			RGB: c,
		}
	}

	paletteJSON := PaletteJSON{
		Count:    len(p.colors),
		Friendly: p.friendly,
		Colors:   colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.colors))
	for i, c := range p.colors {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}
