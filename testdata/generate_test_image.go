// Test image generator for creating a sample album cover for palette extraction
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// Square cover split into four horizontal bands, each band carrying
	// position-derived shade variation so automatic colour-count selection
	// has realistic material to work with.
	size := 500
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	bands := []color.RGBA{
		{R: 178, G: 34, B: 52, A: 255},  // deep red
		{R: 224, G: 158, B: 36, A: 255}, // amber
		{R: 38, G: 94, B: 142, A: 255},  // steel blue
		{R: 36, G: 36, B: 40, A: 255},   // near black
	}

	bandHeight := size / len(bands)
	for y := 0; y < size; y++ {
		band := min(y/bandHeight, len(bands)-1)
		base := bands[band]
		for x := 0; x < size; x++ {
			// Shade drifts a little across the band, never enough to
			// cross into a neighbouring band's territory.
			shift := int8((x/25 + y/25) % 12)
			img.Set(x, y, color.RGBA{
				R: shade(base.R, shift),
				G: shade(base.G, shift),
				B: shade(base.B, shift),
				A: 255,
			})
		}
	}

	file, err := os.Create("testdata/cover.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/cover.png")
}

// shade offsets a channel, clamping at the byte boundaries.
func shade(v uint8, delta int8) uint8 {
	shifted := int(v) + int(delta)
	if shifted < 0 {
		return 0
	}
	if shifted > 255 {
		return 255
	}
	return uint8(shifted)
}
