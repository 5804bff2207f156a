// Package cli provides the command-line interface for albumtint.
package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/albumtint/internal/colour"
	"github.com/jmylchreest/albumtint/internal/store"
)

// paletteOptions captures the clustering flags shared by extract and
// generate.
type paletteOptions struct {
	colors    int // fixed cluster count; 0 selects the count automatically
	maxColors int // upper bound for automatic selection
	seed      int64
	distinct  int // distinct subset size; 0 disables the selection
	threshold float64
}

// newEvaluator builds the colour-vision evaluator for the configured
// threshold.
func newEvaluator(threshold float64) (*colour.Evaluator, error) {
	config := colour.DefaultEvaluatorConfig()
	if threshold > 0 {
		config.Threshold = threshold
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return colour.NewEvaluator(config), nil
}

// buildPalette clusters the sampled pixels into a hue-sorted palette and
// applies the optional distinct-subset selection. The returned method names
// how the colour count was chosen, matching the values recorded in the
// store.
func buildPalette(pixels []colour.RGB, opts paletteOptions) (*colour.Palette, string, error) {
	sample, err := colour.NewSample(pixels)
	if err != nil {
		return nil, "", err
	}

	eval, err := newEvaluator(opts.threshold)
	if err != nil {
		return nil, "", err
	}

	clusterer := colour.NewClusterer(colour.DefaultClustererConfig())

	var colors []colour.RGB
	method := store.SourceFixed
	if opts.colors > 0 {
		result, err := clusterer.Cluster(sample, opts.colors, opts.seed)
		if err != nil {
			return nil, "", err
		}
		colors = result.Centroids
	} else {
		result, err := clusterer.SelectOptimal(sample, opts.maxColors, opts.seed)
		if err != nil {
			return nil, "", err
		}
		colors = result.Results[result.BestK].Centroids
		method = store.SourceOptimal
	}

	// Neighbouring centroids can land on the same colour once rounded.
	palette, err := colour.NewPalette(colour.SortByHue(dedupeColors(colors)), eval)
	if err != nil {
		return nil, "", err
	}

	if opts.distinct > 0 {
		palette, err = colour.SelectDistinct(palette, opts.distinct, eval)
		if err != nil {
			return nil, "", err
		}
		method = store.SourceDistinct
	}
	return palette, method, nil
}

// dedupeColors removes repeated colours, keeping first appearances in order.
func dedupeColors(colors []colour.RGB) []colour.RGB {
	seen := make(map[colour.RGB]bool, len(colors))
	deduped := make([]colour.RGB, 0, len(colors))
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		deduped = append(deduped, c)
	}
	return deduped
}

// formatPalette renders the palette in the requested output format.
func formatPalette(palette *colour.Palette, format string) (string, error) {
	switch format {
	case "swatch":
		return renderSwatches(palette), nil
	case "hex":
		return strings.Join(palette.Hexes(), "\n") + "\n", nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: swatch, hex, json)", format)
	}
}

// renderSwatches renders one swatch per colour followed by the
// colour-vision verdict.
func renderSwatches(palette *colour.Palette) string {
	var b strings.Builder
	for _, c := range palette.Colors() {
		b.WriteString(colour.FormatColourWithPreview(c, 8))
		b.WriteByte('\n')
	}

	if palette.Friendly() {
		b.WriteString("colour-vision friendly: yes\n")
	} else {
		b.WriteString("colour-vision friendly: no\n")
	}
	return b.String()
}

// buildRecord assembles the store record for a generated palette.
func buildRecord(artist, album string, palette *colour.Palette, method string) store.Record {
	return store.Record{
		Artist:       artist,
		Album:        album,
		Colors:       palette.Hexes(),
		Friendly:     palette.Friendly(),
		SourceMethod: method,
	}
}
