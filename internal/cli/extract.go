// Package cli provides the command-line interface for albumtint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/albumtint/internal/image"
)

var (
	// Extract command flags
	extractColours   int
	extractMaxCols   int
	extractSeed      int64
	extractDistinct  int
	extractThreshold float64
	extractFormat    string
	extractOutput    string
	extractSamples   int
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image by clustering its pixels.

By default the number of colours is chosen automatically by looking for the
elbow of the clustering-error curve; pass --colours to fix it instead. The
same image, seed and flags always produce the same palette.

Supported image formats: JPEG, PNG, GIF, WebP. The image may also be an
HTTP(S) URL.

Examples:
  # Pick the number of colours automatically (up to 8)
  albumtint extract cover.jpg

  # Extract exactly 5 colours
  albumtint extract --colours 5 cover.png

  # Reduce to the 3 most mutually distinct colours
  albumtint extract --colours 8 --distinct 3 cover.jpg

  # Plain hex output for scripts
  albumtint extract --format hex cover.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	// Define flags for the extract command
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 0, "number of colours to extract (0 = choose automatically)")
	extractCmd.Flags().IntVar(&extractMaxCols, "max-colours", 8, "largest colour count considered when choosing automatically")
	extractCmd.Flags().Int64Var(&extractSeed, "seed", 1, "random seed for clustering")
	extractCmd.Flags().IntVarP(&extractDistinct, "distinct", "d", 0, "reduce the palette to this many mutually distinct colours (0 = off)")
	extractCmd.Flags().Float64Var(&extractThreshold, "cvd-threshold", 0, "distance below which simulated colours count as confusable")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "swatch", "output format (swatch, hex, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().IntVar(&extractSamples, "max-samples", image.DefaultMaxSamples, "pixel sample budget for large images")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	// Validate the image path
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	pixels := image.Pixels(img, extractSamples)
	palette, _, err := buildPalette(pixels, paletteOptions{
		colors:    extractColours,
		maxColors: extractMaxCols,
		seed:      extractSeed,
		distinct:  extractDistinct,
		threshold: extractThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("palette extracted", "colours", palette.Len())

	output, err := formatPalette(palette, extractFormat)
	if err != nil {
		return err
	}

	// Write output to file or stdout
	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("palette written", "path", extractOutput)
		return nil
	}
	fmt.Print(output)
	return nil
}
