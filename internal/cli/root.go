// Package cli provides the command-line interface for albumtint.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/albumtint/internal/colour"
	"github.com/jmylchreest/albumtint/internal/store"
	"github.com/jmylchreest/albumtint/internal/version"
)

// flagAliases maps American spellings onto the canonical flag names.
var flagAliases = map[string]string{
	"colors":     "colours",
	"max-colors": "max-colours",
	"no-colour":  "no-color",
}

func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

var (
	// Global flags
	flagVerbose bool
	flagNoColor bool
	flagIndex   string

	// logger is rebuilt in PersistentPreRun once the flags are parsed.
	logger hclog.Logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "albumtint",
		Short: "Colour palettes from album artwork",
		Long: `Albumtint turns album artwork into colour palettes.

It finds cover art for an artist and album (or takes any image you give it),
clusters the pixels into a palette, picks the number of colours for you when
asked, and can check how a palette holds up under common colour-vision
deficiencies. Saved palettes live in a local index for later use.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Service credentials may come from a .env file in the working
			// directory; it is optional.
			_ = godotenv.Load()

			level := hclog.Warn
			if flagVerbose {
				level = hclog.Debug
			}
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "albumtint",
				Level:  level,
				Output: os.Stderr,
			})

			if flagNoColor {
				colour.DisableColourOutput = true
			}
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().StringVar(&flagIndex, "index", "", "palette index file (default: ~/.albumtint/palettes/index.json)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(palettesCmd)

	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)
}

// openStore creates the palette store over the configured index path.
func openStore() *store.Store {
	path := flagIndex
	if path == "" {
		path = store.DefaultIndexPath()
	}
	return store.New(path, store.Options{Logger: logger})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
