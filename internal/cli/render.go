package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/cache"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/render/raster"
	"github.com/matzehuels/blockcanvas/pkg/scale"
	"github.com/matzehuels/blockcanvas/pkg/scene"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string   // PNG path; defaults to the scene path with .png
	width    int      // output width; 0 keeps the canvas width
	height   int      // output height; 0 keeps the canvas height
	outline  string   // stroke colour for every block box; empty disables
	fallback string   // family substituted for unknown font families
	fonts    []string // extra fonts as Family=path.ttf
	watch    bool     // re-render whenever the scene changes
	cache    cacheOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene to PNG",
		Long: `Render draws the blocks of a TOML scene over its background and writes a PNG.

Text blocks are fitted into their boxes with the largest font size (up to the
block's own size) at which the text still fits. Blocks that cannot be drawn
are reported and skipped; the rest of the scene is still rendered.

Renders are cached by the content of the scene, its background, the fonts
and the flags, so re-rendering an unchanged scene is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				opts.output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			if opts.watch {
				return c.watchRender(cmd.Context(), args[0], opts)
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: scene path with .png)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width in pixels (default: canvas width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height in pixels (default: canvas height)")
	cmd.Flags().StringVar(&opts.outline, "outline", "", "stroke every block box in this colour, e.g. #ff0000")
	cmd.Flags().StringVar(&opts.fallback, "fallback-font", "", "font family used in place of unknown families")
	cmd.Flags().StringArrayVar(&opts.fonts, "font", nil, "register a TrueType font as Family=path.ttf (repeatable)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the scene file changes")
	cmd.Flags().BoolVar(&opts.cache.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.cache.redisURL, "redis-url", "", "cache renders in Redis, e.g. redis://localhost:6379/0")

	return cmd
}

// runRender renders the scene at path once, through the cache.
func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := loadRenderInput(path, opts)
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := in.cacheKey(opts)
	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("cache read failed", "err", err)
	} else if ok {
		logger.Debug("cache hit", "key", key[:12])
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Rendered %s", path)
		printFile(opts.output)
		printRenderStats(len(in.doc.Blocks), 0, true)
		return nil
	}

	data, res, err := renderScene(in, opts, logger)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		printWarning("skipped %s: %v", s.BlockID, s.Err)
	}
	if res.BackgroundErr != nil {
		printWarning("background: %v", res.BackgroundErr)
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	// Partial renders are not cached so a fixed font or image takes effect.
	if res.Err() == nil {
		if err := store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	printSuccess("Rendered %s", path)
	printFile(opts.output)
	printRenderStats(res.Drawn, len(res.Skipped), false)
	prog.done("Rendered " + filepath.Base(opts.output))
	return nil
}

// renderInput is everything a render depends on, read up front so it can be
// hashed into the cache key.
type renderInput struct {
	doc        *scene.Document
	sceneHash  string
	background image.Image
	bgHash     string
	bgErr      error
	fonts      []fontFile
	width      int
	height     int
}

// fontFile is one --font flag with the file contents.
type fontFile struct {
	family string
	data   []byte
}

func loadRenderInput(path string, opts renderOpts) (*renderInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	doc, err := scene.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	in := &renderInput{
		doc:       doc,
		sceneHash: cache.Hash(data),
		width:     opts.width,
		height:    opts.height,
	}
	if in.width == 0 {
		in.width = int(math.Round(doc.Canvas.Width))
	}
	if in.height == 0 {
		in.height = int(math.Round(doc.Canvas.Height))
	}

	// A missing or corrupt background is reported by the render pass, not
	// fatal.
	if bgPath := doc.BackgroundPath(path); bgPath != "" {
		if raw, err := os.ReadFile(bgPath); err != nil {
			in.bgErr = err
		} else {
			in.bgHash = cache.Hash(raw)
			in.background, _, in.bgErr = scene.DecodeBackground(raw)
		}
	}

	in.fonts, err = readFontFlags(opts.fonts)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (in *renderInput) cacheKey(opts renderOpts) string {
	fonts := make([]string, len(in.fonts))
	for i, f := range in.fonts {
		fonts[i] = f.family + "=" + cache.Hash(f.data)
	}
	return cache.RenderKey(in.sceneHash, cache.RenderKeyOpts{
		Width:      in.width,
		Height:     in.height,
		Format:     "png",
		Outline:    opts.outline,
		Fallback:   opts.fallback,
		Background: in.bgHash,
		Fonts:      fonts,
		Version:    version(),
	})
}

// renderScene draws the scene onto a raster canvas and encodes it as PNG.
func renderScene(in *renderInput, opts renderOpts, logger *log.Logger) ([]byte, render.Result, error) {
	blocks, err := in.doc.ToBlocks()
	if err != nil {
		return nil, render.Result{}, err
	}
	target := geom.Dimensions{Width: float64(in.width), Height: float64(in.height)}
	if target != in.doc.Size() {
		if blocks, err = scale.Scale(blocks, in.doc.Size(), target); err != nil {
			return nil, render.Result{}, err
		}
	}

	canvas, err := raster.New(in.width, in.height, rasterOptions(in.fonts, opts.fallback)...)
	if err != nil {
		return nil, render.Result{}, err
	}

	res := render.Render(canvas, render.Frame{Blocks: blocks, Background: in.background}, render.WithLogger(logger))
	if in.bgErr != nil && res.BackgroundErr == nil {
		res.BackgroundErr = in.bgErr
	}
	if opts.outline != "" {
		for _, b := range blocks {
			if err := canvas.StrokeRect(geom.NormalizeBox(b.Box), opts.outline); err != nil {
				return nil, res, err
			}
		}
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, res, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), res, nil
}

// readFontFlags parses Family=path pairs and reads each font file.
func readFontFlags(flags []string) ([]fontFile, error) {
	fonts := make([]fontFile, 0, len(flags))
	for _, f := range flags {
		family, path, ok := strings.Cut(f, "=")
		family, path = strings.TrimSpace(family), strings.TrimSpace(path)
		if !ok || family == "" || path == "" {
			return nil, fmt.Errorf("--font %q: want Family=path.ttf", f)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("--font %s: %w", family, err)
		}
		fonts = append(fonts, fontFile{family: family, data: data})
	}
	return fonts, nil
}

func rasterOptions(fonts []fontFile, fallback string) []raster.Option {
	opts := make([]raster.Option, 0, len(fonts)+1)
	for _, f := range fonts {
		opts = append(opts, raster.WithFont(f.family, f.data))
	}
	if fallback != "" {
		opts = append(opts, raster.WithFallbackFamily(fallback))
	}
	return opts
}

// watchRender renders once, then again after every change to the scene file
// until ctx is cancelled.
func (c *CLI) watchRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	rerender := func() {
		if err := c.runRender(ctx, path, opts); err != nil {
			printError("%v", err)
		}
	}
	rerender()
	printInfo("Watching %s", path)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("scene changed", "op", ev.Op)
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer.C:
			rerender()
		}
	}
}
