// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/albumtint/internal/security"
)

// Deficiency identifies a simulated colour-vision deficiency.
type Deficiency string

// The three simulated deficiency types.
const (
	Protanopia   Deficiency = "protanopia"
	Deuteranopia Deficiency = "deuteranopia"
	Tritanopia   Deficiency = "tritanopia"
)

// deficiencies lists the simulated deficiencies in evaluation order.
var deficiencies = []Deficiency{Protanopia, Deuteranopia, Tritanopia}

// Deficiencies returns the simulated deficiencies in evaluation order.
func Deficiencies() []Deficiency {
	out := make([]Deficiency, len(deficiencies))
	copy(out, deficiencies)
	return out
}

// Linear deficiency approximation matrices (Vischeck), applied to RGB
// components scaled to [0, 1].
var simulationMatrices = map[Deficiency][3][3]float64{
	Protanopia: {
		{0.56667, 0.43333, 0},
		{0.55833, 0.44167, 0},
		{0, 0.24167, 0.75833},
	},
	Deuteranopia: {
		{0.625, 0.375, 0},
		{0.7, 0.3, 0},
		{0, 0.3, 0.7},
	},
	Tritanopia: {
		{0.95, 0.05, 0},
		{0, 0.43333, 0.56667},
		{0, 0.475, 0.525},
	},
}

// EvaluatorConfig configures the colour-vision evaluator.
type EvaluatorConfig struct {
	// Threshold is the Euclidean distance in unit-RGB space below which two
	// transformed colours count as confusable.
	Threshold float64
}

// DefaultEvaluatorConfig returns the default evaluator configuration.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Threshold: 0.1,
	}
}

// Validate checks the configuration for usable values.
func (c EvaluatorConfig) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %g", c.Threshold)
	}
	return nil
}

// Evaluator checks palettes for colour pairs that become indistinguishable
// under simulated colour-vision deficiencies.
type Evaluator struct {
	config EvaluatorConfig
}

// NewEvaluator creates an Evaluator with the given configuration.
func NewEvaluator(config EvaluatorConfig) *Evaluator {
	return &Evaluator{config: config}
}

// ConfusablePair is an unordered pair of colours that fall within the
// confusion threshold under at least one deficiency. A precedes B in
// canonical colour order.
type ConfusablePair struct {
	A            RGB
	B            RGB
	Deficiencies []Deficiency
}

// Evaluation is the outcome of checking a set of colours.
type Evaluation struct {
	Friendly        bool
	ConfusablePairs []ConfusablePair
}

// Evaluate transforms every colour through each deficiency matrix and
// reports the pairs whose transformed distance falls below the configured
// threshold. The colours are compared in canonical order, so the result does
// not depend on the order they are passed in. Pure and deterministic.
func (e *Evaluator) Evaluate(colors []RGB) Evaluation {
	sorted := make([]RGB, len(colors))
	copy(sorted, colors)
	sort.Slice(sorted, func(i, j int) bool {
		return lessRGB(sorted[i], sorted[j])
	})

	var pairs []ConfusablePair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			var under []Deficiency
			for _, d := range deficiencies {
				if e.confusable(sorted[i], sorted[j], d) {
					under = append(under, d)
				}
			}
			if len(under) > 0 {
				pairs = append(pairs, ConfusablePair{A: sorted[i], B: sorted[j], Deficiencies: under})
			}
		}
	}

	return Evaluation{Friendly: len(pairs) == 0, ConfusablePairs: pairs}
}

// confusable reports whether two colours fall within the confusion threshold
// under the given deficiency.
func (e *Evaluator) confusable(a, b RGB, d Deficiency) bool {
	sa := simulateUnit(a, simulationMatrices[d])
	sb := simulateUnit(b, simulationMatrices[d])
	dr := sa[0] - sb[0]
	dg := sa[1] - sb[1]
	db := sa[2] - sb[2]
	return math.Sqrt(dr*dr+dg*dg+db*db) < e.config.Threshold
}

// Simulate returns the colour as it would appear under the given deficiency.
// Unknown deficiencies return the colour unchanged.
func Simulate(c RGB, d Deficiency) RGB {
	m, ok := simulationMatrices[d]
	if !ok {
		return c
	}
	out := simulateUnit(c, m)
	return RGB{
		R: security.SafeUint8(int(math.Round(out[0] * 255))),
		G: security.SafeUint8(int(math.Round(out[1] * 255))),
		B: security.SafeUint8(int(math.Round(out[2] * 255))),
	}
}

// simulateUnit applies a deficiency matrix to a colour in unit-RGB space.
func simulateUnit(c RGB, m [3][3]float64) [3]float64 {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0
	return [3]float64{
		m[0][0]*r + m[0][1]*g + m[0][2]*b,
		m[1][0]*r + m[1][1]*g + m[1][2]*b,
		m[2][0]*r + m[2][1]*g + m[2][2]*b,
	}
}

// lessRGB orders colours canonically by channel triple.
func lessRGB(a, b RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}
