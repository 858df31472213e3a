package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/scale"
	"github.com/matzehuels/blockcanvas/pkg/scene"
)

// scaleOpts holds the flags of the scale command.
type scaleOpts struct {
	output string
	width  float64
	height float64
}

// scaleCommand creates the scale command.
func (c *CLI) scaleCommand() *cobra.Command {
	var opts scaleOpts

	cmd := &cobra.Command{
		Use:   "scale [scene.toml]",
		Short: "Remap a scene to another canvas size",
		Long: `Scale maps every block of a scene proportionally onto a new canvas size.

Positions and sizes are multiplied by the width and height ratios; font sizes
by the width ratio only. The result is written as TOML to --output, or to
stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScale(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output scene path (default: stdout)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "target canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "target canvas height")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")

	return cmd
}

func runScale(ctx context.Context, path string, opts scaleOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	out, wr, hr, err := scaleDocument(doc, geom.Dimensions{Width: opts.width, Height: opts.height})
	if err != nil {
		return err
	}
	logger.Debug("scaled", "from", doc.Size(), "to", out.Size(), "wr", wr, "hr", hr)

	if opts.output == "" {
		return scene.Write(out, os.Stdout)
	}
	if err := scene.Save(out, opts.output); err != nil {
		return err
	}
	printSuccess("Scaled %s to %s", doc.Size(), out.Size())
	printDetail("ratios: width %.4g, height %.4g", wr, hr)
	printFile(opts.output)
	return nil
}

// scaleDocument returns a copy of doc with its canvas set to to and every
// block scaled accordingly.
func scaleDocument(doc *scene.Document, to geom.Dimensions) (*scene.Document, float64, float64, error) {
	wr, hr, err := scale.Ratios(doc.Size(), to)
	if err != nil {
		return nil, 0, 0, err
	}
	blocks, err := doc.ToBlocks()
	if err != nil {
		return nil, 0, 0, err
	}
	scaled, err := scale.Scale(blocks, doc.Size(), to)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("scale: %w", err)
	}
	return scene.FromBlocks(to, doc.Canvas.Background, scaled), wr, hr, nil
}
