package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/editor"
	"github.com/matzehuels/blockcanvas/pkg/render/statechart"
)

// statesOpts holds the flags of the states command.
type statesOpts struct {
	output   string
	format   string // dot or svg
	detailed bool
	current  string // state to highlight
}

// statesCommand creates the states command.
func (c *CLI) statesCommand() *cobra.Command {
	opts := statesOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "states",
		Short: "Draw the editor state machine",
		Long: `States prints the transition table of the editor as a Graphviz diagram.

With --format svg the diagram is laid out with the embedded Graphviz engine;
--detailed adds guards and actions to the edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStates(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with guards and actions")
	cmd.Flags().StringVar(&opts.current, "current", "", "highlight a state, e.g. EditingText")

	return cmd
}

func runStates(ctx context.Context, opts statesOpts) error {
	chart := statechart.Options{Detailed: opts.detailed}
	if opts.current != "" {
		st, err := editor.ParseState(opts.current)
		if err != nil {
			return err
		}
		chart.Current = &st
	}
	dot := statechart.ToDOT(editor.Transitions(), chart)

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		sp := newSpinner(ctx, "Laying out state machine...")
		sp.start()
		svg, err := statechart.RenderSVG(ctx, dot)
		sp.stop()
		if err != nil {
			return err
		}
		data = svg
	default:
		return fmt.Errorf("unknown format %q (want dot or svg)", opts.format)
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Wrote %d transitions", len(editor.Transitions()))
	printFile(opts.output)
	return nil
}
