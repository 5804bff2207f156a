// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// SortByHue returns the colours reordered by HSV hue, then saturation, then
// value. Equal keys keep their input order. Generated palettes are presented
// and persisted in this order.
func SortByHue(colors []RGB) []RGB {
	type keyed struct {
		c       RGB
		h, s, v float64
	}

	ks := make([]keyed, len(colors))
	for i, c := range colors {
		cf := colorful.Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		}
		h, s, v := cf.Hsv()
		ks[i] = keyed{c: c, h: h, s: s, v: v}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].h != ks[j].h {
			return ks[i].h < ks[j].h
		}
		if ks[i].s != ks[j].s {
			return ks[i].s < ks[j].s
		}
		return ks[i].v < ks[j].v
	})

	out := make([]RGB, len(ks))
	for i, k := range ks {
		out[i] = k.c
	}
	return out
}
