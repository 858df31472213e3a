package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The CLI logger is attached to each command's context before it runs and
// receives render and cache events at debug level.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "blockcanvas",
		Short: "Blockcanvas lays out and renders text-block canvases",
		Long: `Blockcanvas is the command-line host of the block canvas editor: it renders
TOML scenes to PNG, rescales layouts between canvas sizes, replays pointer
scripts through the editor state machine and edits scenes in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.statesCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
