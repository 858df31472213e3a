package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/render/raster"
	"github.com/matzehuels/blockcanvas/pkg/scene"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// fitOpts holds the flags of the fit command.
type fitOpts struct {
	fallback string
	fonts    []string
}

// fitRow is the fitted layout of one block.
type fitRow struct {
	block  block.Block
	layout textfit.Layout
	err    error
}

// fitCommand creates the fit command.
func (c *CLI) fitCommand() *cobra.Command {
	var opts fitOpts

	cmd := &cobra.Command{
		Use:   "fit [scene.toml]",
		Short: "Show the fitted font size and position of every text block",
		Long: `Fit measures every text block of a scene with the raster fonts and prints
the font size the renderer will use, the draw position and the baseline.

A fitted size below the block's own size means the text was shrunk to fit
its box.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.fallback, "fallback-font", "", "font family used in place of unknown families")
	cmd.Flags().StringArrayVar(&opts.fonts, "font", nil, "register a TrueType font as Family=path.ttf (repeatable)")

	return cmd
}

func runFit(ctx context.Context, path string, opts fitOpts) error {
	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	blocks, err := doc.ToBlocks()
	if err != nil {
		return err
	}
	m, err := newMeasurer(opts.fonts, opts.fallback)
	if err != nil {
		return err
	}

	rows := fitBlocks(blocks, m)
	loggerFromContext(ctx).Debug("fitted", "blocks", len(rows))

	fmt.Println(StyleTitle.Render(path) + " " + StyleDim.Render(doc.Size().String()))
	fmt.Println(renderTable(
		[]string{"ID", "Text", "Box", "Size", "Fitted", "X", "Y", "Baseline"},
		fitTableRows(rows),
	))
	return nil
}

// newMeasurer returns a raster canvas used only for measurement.
func newMeasurer(fontFlags []string, fallback string) (*raster.Canvas, error) {
	fonts, err := readFontFlags(fontFlags)
	if err != nil {
		return nil, err
	}
	return raster.New(1, 1, rasterOptions(fonts, fallback)...)
}

// fitBlocks fits the text of every text block with text.
func fitBlocks(blocks []block.Block, m textfit.Measurer) []fitRow {
	var rows []fitRow
	for _, b := range blocks {
		if !b.IsText() || b.Text == "" {
			continue
		}
		l, err := textfit.FitBlock(b, m)
		rows = append(rows, fitRow{block: b, layout: l, err: err})
	}
	return rows
}

func fitTableRows(rows []fitRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := []string{r.block.ID, truncate(r.block.Text, 24), r.block.Box.String(), fmt.Sprintf("%g", r.block.Style.FontSize)}
		switch {
		case r.err != nil:
			row = append(row, StyleWarning.Render("error"), "", "", truncate(r.err.Error(), 32))
		default:
			fitted := fmt.Sprintf("%.4g", r.layout.FontSize)
			if r.layout.FontSize < r.block.Style.FontSize {
				fitted = StyleWarning.Render(fitted)
			}
			row = append(row, fitted,
				fmt.Sprintf("%.4g", r.layout.X), fmt.Sprintf("%.4g", r.layout.Y), string(r.layout.Baseline))
		}
		out[i] = row
	}
	return out
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
