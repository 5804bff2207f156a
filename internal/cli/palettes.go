// Package cli provides the command-line interface for albumtint.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/albumtint/internal/colour"
)

var (
	// Palettes list flags
	palettesPage    int
	palettesPerPage int
	palettesColours int

	// Palettes show flags
	palettesShowCVD bool
)

// palettesCmd groups the saved-palette subcommands.
var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "Manage saved palettes",
	Long:  `List, inspect and delete palettes saved in the local index.`,
}

// palettesListCmd represents the palettes list command
var palettesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved palettes",
	Long: `List saved palettes in pages, ordered by id.

Examples:
  # First page of saved palettes
  albumtint palettes list

  # Second page, five per page
  albumtint palettes list --page 2 --per-page 5

  # Only palettes with exactly 4 colours
  albumtint palettes list --colours 4`,
	RunE: runPalettesList,
}

// palettesShowCmd represents the palettes show command
var palettesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved palette",
	Long: `Show a saved palette with colour swatches.

With --cvd the palette is also rendered as it appears under protanopia,
deuteranopia and tritanopia, with any confusable colour pairs listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPalettesShow,
}

// palettesDeleteCmd represents the palettes delete command
var palettesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved palette",
	Long:  `Delete a saved palette from the index. Its id is never reused.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPalettesDelete,
}

func init() {
	palettesListCmd.Flags().IntVar(&palettesPage, "page", 1, "page to show")
	palettesListCmd.Flags().IntVar(&palettesPerPage, "per-page", 10, "palettes per page")
	palettesListCmd.Flags().IntVar(&palettesColours, "colours", 0, "only list palettes with this many colours (0 = all)")

	palettesShowCmd.Flags().BoolVar(&palettesShowCVD, "cvd", false, "also render the palette under colour-vision deficiencies")

	palettesCmd.AddCommand(palettesListCmd)
	palettesCmd.AddCommand(palettesShowCmd)
	palettesCmd.AddCommand(palettesDeleteCmd)
}

// parsePaletteID parses a positional palette id argument.
func parsePaletteID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid palette id %q", arg)
	}
	return id, nil
}

// runPalettesList executes the palettes list command.
func runPalettesList(cmd *cobra.Command, args []string) error {
	if palettesPage < 1 {
		return fmt.Errorf("page must be at least 1")
	}
	if palettesPerPage < 1 {
		return fmt.Errorf("per-page must be at least 1")
	}

	records, err := openStore().List(cmd.Context())
	if err != nil {
		return err
	}

	if palettesColours > 0 {
		filtered := records[:0]
		for _, r := range records {
			if len(r.Colors) == palettesColours {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Println("no palettes saved")
		return nil
	}

	pages := (len(records) + palettesPerPage - 1) / palettesPerPage
	if palettesPage > pages {
		return fmt.Errorf("page %d is out of range (only %d)", palettesPage, pages)
	}
	start := (palettesPage - 1) * palettesPerPage
	end := min(start+palettesPerPage, len(records))

	table := NewTable("ID", "ARTIST", "ALBUM", "COLOURS", "CVD FRIENDLY", "METHOD", "CREATED")
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		// Roughly 50 columns go to the fixed-width fields; split the rest
		// between artist and album.
		if room := (width - 50) / 2; room >= 10 {
			table.Limit(1, room)
			table.Limit(2, room)
		}
	}
	for _, r := range records[start:end] {
		table.AddRow(
			strconv.Itoa(r.ID),
			r.Artist,
			r.Album,
			strconv.Itoa(len(r.Colors)),
			yesNo(r.Friendly),
			r.SourceMethod,
			r.CreatedAt.Format("2006-01-02"),
		)
	}
	fmt.Print(table.Render())
	fmt.Printf("page %d of %d (%d palettes)\n", palettesPage, pages, len(records))
	return nil
}

// runPalettesShow executes the palettes show command.
func runPalettesShow(cmd *cobra.Command, args []string) error {
	id, err := parsePaletteID(args[0])
	if err != nil {
		return err
	}

	record, err := openStore().Load(cmd.Context(), id)
	if err != nil {
		return err
	}

	colors := make([]colour.RGB, 0, len(record.Colors))
	for _, hex := range record.Colors {
		c, err := colour.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("stored colour %q: %w", hex, err)
		}
		colors = append(colors, c)
	}

	fmt.Printf("%s - %s\n", record.Artist, record.Album)
	fmt.Printf("id %d, %s, saved %s\n\n", record.ID, record.SourceMethod, record.CreatedAt.Format("2006-01-02"))
	for _, c := range colors {
		fmt.Println(colour.ColourPreviewWithText(c, c.Hex(), 12))
	}
	fmt.Printf("\ncolour-vision friendly: %s\n", yesNo(record.Friendly))

	if !palettesShowCVD {
		return nil
	}

	for _, d := range colour.Deficiencies() {
		fmt.Printf("\n%s:\n", d)
		for _, c := range colors {
			simulated := colour.Simulate(c, d)
			fmt.Println(colour.ColourPreviewWithText(simulated, c.Hex(), 12))
		}
	}

	evaluation := colour.NewEvaluator(colour.DefaultEvaluatorConfig()).Evaluate(colors)
	if len(evaluation.ConfusablePairs) > 0 {
		fmt.Println("\nconfusable pairs:")
		for _, pair := range evaluation.ConfusablePairs {
			fmt.Printf("  %s and %s (%s)\n", pair.A.Hex(), pair.B.Hex(), deficiencyList(pair.Deficiencies))
		}
	}
	return nil
}

// runPalettesDelete executes the palettes delete command.
func runPalettesDelete(cmd *cobra.Command, args []string) error {
	id, err := parsePaletteID(args[0])
	if err != nil {
		return err
	}
	if err := openStore().Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("deleted palette %d\n", id)
	return nil
}

// yesNo renders a boolean for table output.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// deficiencyList joins deficiency names for display.
func deficiencyList(deficiencies []colour.Deficiency) string {
	names := ""
	for i, d := range deficiencies {
		if i > 0 {
			names += ", "
		}
		names += string(d)
	}
	return names
}
