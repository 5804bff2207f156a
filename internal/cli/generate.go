// Package cli provides the command-line interface for albumtint.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/albumtint/internal/artwork"
	"github.com/jmylchreest/albumtint/internal/image"
	"github.com/jmylchreest/albumtint/internal/util/imagecache"
)

var (
	// Generate command flags
	generateArtist    string
	generateAlbum     string
	generateColours   int
	generateMaxCols   int
	generateSeed      int64
	generateDistinct  int
	generateThreshold float64
	generateFormat    string
	generateSave      bool
	generateConfig    string
	generateNoCache   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a palette from an album's cover art",
	Long: `Generate a colour palette for an album by finding its cover art online.

Cover art is looked up on Last.fm (when an API key is configured), then
MusicBrainz, then Discogs (when a token is configured). The downloaded
artwork is cached locally, so repeated runs for the same album do not hit
the network again.

Credentials are read from the config file (~/.albumtint/config.toml), from
the environment (ALBUMTINT_LASTFM_API_KEY, ALBUMTINT_DISCOGS_TOKEN) or from
a .env file in the working directory.

Examples:
  # Find the cover and pick the number of colours automatically
  albumtint generate --artist "Radiohead" --album "Kid A"

  # Fixed colour count, saved to the palette index
  albumtint generate --artist "Portishead" --album "Dummy" --colours 5 --save

  # The 4 most mutually distinct colours of the cover
  albumtint generate --artist "Autechre" --album "Amber" --distinct 4`,
	RunE: runGenerate,
}

func init() {
	// Album selection (required)
	generateCmd.Flags().StringVarP(&generateArtist, "artist", "a", "", "artist name (required)")
	generateCmd.Flags().StringVarP(&generateAlbum, "album", "b", "", "album name (required)")
	generateCmd.MarkFlagRequired("artist")
	generateCmd.MarkFlagRequired("album")

	// Clustering options, matching extract
	generateCmd.Flags().IntVarP(&generateColours, "colours", "c", 0, "number of colours to extract (0 = choose automatically)")
	generateCmd.Flags().IntVar(&generateMaxCols, "max-colours", 8, "largest colour count considered when choosing automatically")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 1, "random seed for clustering")
	generateCmd.Flags().IntVarP(&generateDistinct, "distinct", "d", 0, "reduce the palette to this many mutually distinct colours (0 = off)")
	generateCmd.Flags().Float64Var(&generateThreshold, "cvd-threshold", 0, "distance below which simulated colours count as confusable")

	// Output and persistence
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "swatch", "output format (swatch, hex, json)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the palette to the index")
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "config file (default: ~/.albumtint/config.toml)")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "re-download the cover art even when cached")
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	configPath := generateConfig
	if configPath == "" {
		configPath = artwork.DefaultConfigPath()
	}
	cfg, err := artwork.LoadConfig(configPath)
	if err != nil {
		return err
	}

	finder := artwork.NewFinder(cfg, logger)
	coverURL, err := finder.FindCoverURL(ctx, generateArtist, generateAlbum)
	if err != nil {
		return err
	}

	cachedPath, err := imagecache.DownloadAndCache(ctx, coverURL, imagecache.CacheOptions{
		AllowOverwrite: generateNoCache,
	})
	if err != nil {
		return fmt.Errorf("failed to download cover art: %w", err)
	}
	logger.Debug("cover art ready", "path", cachedPath)

	img, err := image.NewFileLoader().Load(cachedPath)
	if err != nil {
		return fmt.Errorf("failed to load cover art: %w", err)
	}

	pixels := image.Pixels(img, image.DefaultMaxSamples)
	palette, method, err := buildPalette(pixels, paletteOptions{
		colors:    generateColours,
		maxColors: generateMaxCols,
		seed:      generateSeed,
		distinct:  generateDistinct,
		threshold: generateThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to build palette: %w", err)
	}

	output, err := formatPalette(palette, generateFormat)
	if err != nil {
		return err
	}
	if generateFormat == "swatch" {
		fmt.Printf("%s - %s\n", generateArtist, generateAlbum)
	}
	fmt.Print(output)

	if generateSave {
		record := buildRecord(generateArtist, generateAlbum, palette, method)
		id, err := openStore().Save(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to save palette: %w", err)
		}
		fmt.Printf("saved palette %d\n", id)
	}
	return nil
}
