package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/editor"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/hittest"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/render/raster"
	"github.com/matzehuels/blockcanvas/pkg/scene"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// replayOpts holds the flags of the replay command.
type replayOpts struct {
	output    string  // scene TOML path; stdout when empty
	png       string  // optional PNG of the final state
	outline   string  // selection outline colour for --png
	scanOrder string  // topmost or forward
	width     float64 // canvas size when the script has no scene
	height    float64
	fallback  string
	fonts     []string
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	opts := replayOpts{width: 800, height: 600, outline: "#1e90ff"}

	cmd := &cobra.Command{
		Use:   "replay [script.toml]",
		Short: "Drive the editor from a pointer script",
		Long: `Replay feeds the events of a TOML script (down, move, up, commit, tool,
reset) into the editor state machine and writes the resulting scene.

A commit event ends the text edit most recently opened by the editor. New
blocks get the ids block-1, block-2, ... skipping ids already in the scene.

Example script:

  scene = "card.toml"

  [[events]]
  kind = "tool"
  tool = "text"

  [[events]]
  kind = "down"
  x = 50
  y = 50

  [[events]]
  kind = "up"
  x = 150
  y = 100

  [[events]]
  kind = "commit"
  text = "Certificate"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output scene path (default: stdout)")
	cmd.Flags().StringVar(&opts.png, "png", "", "also render the final state to this PNG")
	cmd.Flags().StringVar(&opts.outline, "outline", opts.outline, "selection outline colour in the PNG")
	cmd.Flags().StringVar(&opts.scanOrder, "scan-order", "topmost", "which overlapping block a click picks: topmost, forward")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width when the script names no scene")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height when the script names no scene")
	cmd.Flags().StringVar(&opts.fallback, "fallback-font", "", "font family used in place of unknown families")
	cmd.Flags().StringArrayVar(&opts.fonts, "font", nil, "register a TrueType font as Family=path.ttf (repeatable)")

	return cmd
}

func runReplay(ctx context.Context, path string, opts replayOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	script, err := scene.LoadScript(path)
	if err != nil {
		return err
	}
	order, err := hittest.ParseScanOrder(opts.scanOrder)
	if err != nil {
		return err
	}

	doc := &scene.Document{Canvas: scene.Canvas{Width: opts.width, Height: opts.height}}
	var background image.Image
	if scenePath := script.ScenePath(path); scenePath != "" {
		if doc, err = scene.Load(scenePath); err != nil {
			return err
		}
		if bgPath := doc.BackgroundPath(scenePath); bgPath != "" && opts.png != "" {
			if background, err = scene.LoadBackground(bgPath); err != nil {
				logger.Warn("background not loaded", "err", err)
			}
		}
	}
	blocks, err := doc.ToBlocks()
	if err != nil {
		return err
	}

	fonts, err := readFontFlags(opts.fonts)
	if err != nil {
		return err
	}
	m, err := raster.New(1, 1, rasterOptions(fonts, opts.fallback)...)
	if err != nil {
		return err
	}

	sess, err := replay(script, blocks, m, logger, editor.WithScanOrder(order))
	if err != nil {
		return err
	}
	ed := sess.Editor()
	if ed.State() != editor.Idle {
		logger.Warn("script ended mid-gesture", "state", ed.State(), "active", ed.ActiveID())
	}

	out := scene.FromBlocks(doc.Size(), doc.Canvas.Background, ed.Blocks())
	if opts.output == "" {
		if err := scene.Write(out, os.Stdout); err != nil {
			return err
		}
	} else if err := scene.Save(out, opts.output); err != nil {
		return err
	}

	if opts.png != "" {
		if err := replayPNG(sess, doc.Size(), background, fonts, opts, logger); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Replayed %d events (%d blocks, %s)", len(script.Events), ed.Len(), ed.State()))
	return nil
}

// replay runs the script events against a session loaded with blocks.
func replay(script *scene.Script, blocks []block.Block, m textfit.Measurer, logger *log.Logger, opts ...editor.Option) (*editor.Session, error) {
	var sess *editor.Session
	ids := sequentialIDs(func(id string) bool {
		return block.Index(sess.Editor().Blocks(), id) >= 0
	})
	sess = editor.NewSession(m, logger, append(opts, editor.WithIDFunc(ids))...)
	if err := sess.Load(blocks); err != nil {
		return nil, err
	}

	var lastEdit *editor.EditRequest
	for i, ev := range script.Events {
		var fx editor.Effects
		switch ev.Kind {
		case scene.EventDown:
			fx = sess.PointerDown(ev.Point())
		case scene.EventMove:
			fx = sess.PointerMove(ev.Point())
		case scene.EventUp:
			fx = sess.PointerUp(ev.Point())
		case scene.EventCommit:
			if lastEdit == nil {
				return nil, fmt.Errorf("event %d: commit without an open edit", i+1)
			}
			fx = sess.Commit(lastEdit.BlockID, ev.Text)
		case scene.EventTool:
			t, err := editor.ParseTool(ev.Tool)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i+1, err)
			}
			if err := sess.SetTool(t); err != nil {
				return nil, fmt.Errorf("event %d: %w", i+1, err)
			}
			continue
		case scene.EventReset:
			sess.Reset()
			continue
		}
		if fx.Edit != nil {
			lastEdit = fx.Edit
		}
		if fx.Err != nil {
			logger.Warn("event failed", "n", i+1, "kind", ev.Kind, "err", fx.Err)
		}
	}
	return sess, nil
}

// sequentialIDs returns an id generator yielding block-1, block-2, ...
// skipping ids for which taken reports true.
func sequentialIDs(taken func(string) bool) func() string {
	n := 0
	return func() string {
		for {
			n++
			id := fmt.Sprintf("block-%d", n)
			if !taken(id) {
				return id
			}
		}
	}
}

func replayPNG(sess *editor.Session, size geom.Dimensions, background image.Image, fonts []fontFile, opts replayOpts, logger *log.Logger) error {
	canvas, err := raster.New(int(size.Width), int(size.Height), rasterOptions(fonts, opts.fallback)...)
	if err != nil {
		return err
	}
	var ropts []render.Option
	if opts.outline != "" {
		ropts = append(ropts, render.WithSelectionOutline(opts.outline))
	}
	res := sess.Render(canvas, background, ropts...)
	if err := res.Err(); err != nil {
		logger.Warn("partial render", "skipped", len(res.Skipped), "err", err)
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(opts.png, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.png, err)
	}
	return nil
}
