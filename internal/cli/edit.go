package cli

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/editor"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/hittest"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/scale"
	"github.com/matzehuels/blockcanvas/pkg/scene"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

const (
	// chromeRows is the header line plus the status line.
	chromeRows = 2

	colorBlock     = "#3a3a3a"
	colorSelection = "#005f87"
	colorOverlay   = "#5f5f00"
)

// Half a cell around a corner grabs it; points are cell centres.
const cellHandleTolerance = 0.5

var styleKeyHint = lipgloss.NewStyle().Foreground(colorDim)

// editOpts holds the flags of the edit command.
type editOpts struct {
	width     float64 // canvas size of a new scene
	height    float64
	scanOrder string
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	opts := editOpts{width: 800, height: 600}

	cmd := &cobra.Command{
		Use:   "edit [scene.toml]",
		Short: "Edit a scene in the terminal",
		Long: `Edit opens a scene in a full-screen terminal editor driven by the mouse.

The canvas is scaled to the terminal; blocks keep their proportions and are
scaled back to the canvas size on save. With the text tool, drag to draw a
block and type its text; with the select tool, drag a block to move it or
drag its corners to resize it. Clicking a corner without dragging edits the
text. Enter, Esc or a click elsewhere ends the edit.

Keys: t text tool, s select tool, w save, r clear, q quit.

A scene that does not exist yet is created with --width and --height.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width of a new scene")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height of a new scene")
	cmd.Flags().StringVar(&opts.scanOrder, "scan-order", "topmost", "which overlapping block a click picks: topmost, forward")

	return cmd
}

func runEdit(ctx context.Context, path string, opts editOpts) error {
	logger := loggerFromContext(ctx)

	order, err := hittest.ParseScanOrder(opts.scanOrder)
	if err != nil {
		return err
	}
	doc, err := scene.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrCodeFileNotFound):
		doc = &scene.Document{Canvas: scene.Canvas{Width: opts.width, Height: opts.height}}
		if err := doc.Validate(); err != nil {
			return err
		}
	default:
		return err
	}

	m, err := newEditModel(path, doc, order, logger)
	if err != nil {
		return err
	}
	if bgPath := doc.BackgroundPath(path); bgPath != "" {
		if m.background, err = scene.LoadBackground(bgPath); err != nil {
			logger.Warn("background not loaded", "err", err)
		}
	}

	// Log lines would tear the alternate screen.
	prev := logger.GetLevel()
	logger.SetLevel(log.FatalLevel)
	defer logger.SetLevel(prev)

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(editModel); ok && fm.dirty {
		printWarning("quit with unsaved changes")
	}
	return nil
}

// focusMsg is the deferred focus of the edit overlay opened with seq.
type focusMsg struct{ seq uint64 }

// editModel is the bubbletea model of the edit command. Blocks live in the
// session in cell coordinates; the canvas coordinates of the document are
// only used to load and save.
type editModel struct {
	path       string
	canvas     geom.Dimensions
	background image.Image
	bgName     string
	order      hittest.ScanOrder
	logger     *log.Logger

	// blocks holds the document in canvas coordinates until the first
	// window size is known.
	blocks []block.Block
	sess   *editor.Session
	surf   *cellSurface
	grid   geom.Dimensions

	input  textinput.Model
	edit   *editor.EditRequest
	cursor hittest.Cursor
	status string
	dirty  bool
}

func newEditModel(path string, doc *scene.Document, order hittest.ScanOrder, logger *log.Logger) (editModel, error) {
	blocks, err := doc.ToBlocks()
	if err != nil {
		return editModel{}, err
	}
	in := textinput.New()
	in.Prompt = ""
	return editModel{
		path:   path,
		canvas: doc.Size(),
		bgName: doc.Canvas.Background,
		order:  order,
		logger: logger,
		blocks: blocks,
		input:  in,
		cursor: hittest.CursorDefault,
	}, nil
}

func (m editModel) Init() tea.Cmd { return nil }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height-chromeRows)
	case focusMsg:
		if m.sess != nil && m.sess.Editor().Editing(msg.seq) {
			return m, m.input.Focus()
		}
		return m, nil
	case tea.MouseMsg:
		return m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

// resize rebuilds the session for a grid of cols x rows cells. An open
// edit is committed first. A draw or resize gesture in progress is dropped,
// and reloading normalizes the box it left behind.
func (m editModel) resize(cols, rows int) (tea.Model, tea.Cmd) {
	if m.sess != nil {
		m = m.commit()
		m.blocks = m.canvasBlocks()
	}
	grid := geom.Dimensions{Width: float64(max(cols, 1)), Height: float64(max(rows, 1))}
	wr, hr, err := scale.Ratios(m.canvas, grid)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	style := block.DefaultStyle()
	style.FontSize *= wr
	m.surf = newCellSurface(int(grid.Width), int(grid.Height))
	m.sess = editor.NewSession(m.surf, m.logger,
		editor.WithScanOrder(m.order),
		editor.WithHandleTolerance(cellHandleTolerance),
		editor.WithInitialSize(geom.Dimensions{
			Width:  editor.DefaultInitialSize.Width * wr,
			Height: editor.DefaultInitialSize.Height * hr,
		}),
		editor.WithDefaultStyle(style),
	)
	scaled, err := scale.Scale(m.blocks, m.canvas, grid)
	if err == nil {
		err = m.sess.Load(scaled)
	}
	if err != nil {
		m.status = err.Error()
	}
	m.grid = grid
	return m, nil
}

// canvasBlocks returns the session blocks in canvas coordinates.
func (m editModel) canvasBlocks() []block.Block {
	if m.sess == nil {
		return m.blocks
	}
	blocks, err := scale.Scale(m.sess.Editor().Blocks(), m.grid, m.canvas)
	if err != nil {
		return m.blocks
	}
	return blocks
}

func (m editModel) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.sess == nil {
		return m, nil
	}
	// Cell centre, below the header line.
	p := geom.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y-1) + 0.5}

	var fx editor.Effects
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.edit != nil {
			// Clicking away from the overlay blurs it, which commits.
			return m.commit(), nil
		}
		fx = m.sess.PointerDown(p)
	case msg.Action == tea.MouseActionMotion:
		fx = m.sess.PointerMove(p)
	case msg.Action == tea.MouseActionRelease:
		fx = m.sess.PointerUp(p)
	default:
		return m, nil
	}
	return m.effects(fx)
}

func (m editModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.edit != nil {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			return m.commit(), nil
		}
		if !m.input.Focused() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.sess == nil {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.setTool(editor.CreateTool(block.Text))
	case "s":
		m.setTool(editor.SelectTool)
	case "r":
		m.sess.Reset()
		m.dirty = true
		m.status = "cleared"
	case "w", "ctrl+s":
		if err := m.save(); err != nil {
			m.status = err.Error()
		} else {
			m.dirty = false
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

func (m *editModel) setTool(t editor.Tool) {
	if err := m.sess.SetTool(t); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "tool: " + string(t)
}

// effects applies the host side of a transition: the cursor, the dirty flag
// and the edit overlay with its deferred focus.
func (m editModel) effects(fx editor.Effects) (tea.Model, tea.Cmd) {
	if fx.Ignored {
		return m, nil
	}
	m.cursor = fx.Cursor
	if fx.Changed {
		m.dirty = true
	}
	if fx.Err != nil {
		m.status = fx.Err.Error()
	}
	if fx.Edit == nil {
		return m, nil
	}

	m.edit = fx.Edit
	m.input.Reset()
	m.input.SetValue(fx.Edit.InitialText)
	m.input.CursorEnd()
	seq := fx.Edit.Seq
	return m, func() tea.Msg { return focusMsg{seq: seq} }
}

// commit ends the open edit, if any, with the overlay text.
func (m editModel) commit() editModel {
	if m.edit == nil {
		return m
	}
	fx := m.sess.Commit(m.edit.BlockID, m.input.Value())
	m.edit = nil
	m.input.Blur()
	m.input.Reset()
	if fx.Err != nil {
		m.status = fx.Err.Error()
	}
	if fx.Changed {
		m.dirty = true
	}
	return m
}

func (m editModel) save() error {
	doc := scene.FromBlocks(m.canvas, m.bgName, m.canvasBlocks())
	if err := scene.Save(doc, m.path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (m editModel) View() string {
	if m.sess == nil {
		return "loading..."
	}
	ed := m.sess.Editor()

	res := m.sess.Render(m.surf, m.background, render.WithSelectionOutline(colorSelection))
	frame := ed.Frame(nil)
	for _, b := range frame.Blocks {
		if !frame.Hidden(b) {
			m.surf.highlight(b.Box, colorBlock, false)
		}
	}
	if m.edit != nil {
		m.drawOverlay()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.path))
	fmt.Fprintf(&b, " %s %s %s ",
		StyleValue.Render(string(ed.Tool())),
		StyleDim.Render(ed.State().String()),
		StyleDim.Render(m.canvas.String()))
	b.WriteString(styleKeyHint.Render("t text · s select · w save · r clear · q quit"))
	b.WriteByte('\n')
	b.WriteString(m.surf.View())
	b.WriteByte('\n')

	status := m.status
	if n := len(res.Skipped); n > 0 {
		status = fmt.Sprintf("%d blocks not drawn · %s", n, status)
	}
	if m.dirty {
		status = "modified · " + status
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d blocks · %s · %s", ed.Len(), m.cursor, status)))
	return b.String()
}

// drawOverlay writes the overlay text and its cursor at the edit position.
func (m editModel) drawOverlay() {
	x, y := m.edit.ScreenX, m.edit.ScreenY
	text := m.input.Value()
	font := textfit.FontSpec{Size: 1, Family: block.DefaultFontFamily}
	m.surf.DrawText(text+" ", x, y, textfit.BaselineHanging, "#ffffff", font)
	m.surf.highlight(geom.Box{X: x, Y: y, Width: float64(runewidth.StringWidth(text) + 1), Height: 1}, colorOverlay, true)
	if m.input.Focused() {
		before := string([]rune(text)[:m.input.Position()])
		m.surf.highlight(geom.Box{X: x + float64(runewidth.StringWidth(before)), Y: y, Width: 1, Height: 1}, colorSelection, true)
	}
}
