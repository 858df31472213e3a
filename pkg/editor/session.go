package editor

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/observability"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// Session binds an Editor to a host. It keeps the current Editor value,
// measures committed text with m and reports transitions to the editor hooks.
type Session struct {
	ed     Editor
	m      textfit.Measurer
	logger *log.Logger
}

// NewSession creates a Session over a new Editor. logger may be nil.
func NewSession(m textfit.Measurer, logger *log.Logger, opts ...Option) *Session {
	return &Session{ed: New(opts...), m: m, logger: logger}
}

// Editor returns the current editor value.
func (s *Session) Editor() Editor { return s.ed }

// SetMeasurer replaces the measurer used for commits.
func (s *Session) SetMeasurer(m textfit.Measurer) { s.m = m }

// PointerDown forwards a pointer press to the editor.
func (s *Session) PointerDown(p geom.Point) Effects {
	next, fx := s.ed.PointerDown(p)
	return s.apply(EventPointerDown, next, fx)
}

// PointerMove forwards pointer motion to the editor.
func (s *Session) PointerMove(p geom.Point) Effects {
	next, fx := s.ed.PointerMove(p)
	return s.apply(EventPointerMove, next, fx)
}

// PointerUp forwards a pointer release to the editor.
func (s *Session) PointerUp(p geom.Point) Effects {
	next, fx := s.ed.PointerUp(p)
	return s.apply(EventPointerUp, next, fx)
}

// Commit ends the text edit of block id with text.
func (s *Session) Commit(id, text string) Effects {
	next, fx := s.ed.CommitText(id, text, s.m)
	if fx.Err != nil {
		s.warn("commit kept box", "id", id, "err", fx.Err)
	}
	return s.apply(EventCommit, next, fx)
}

// SetTool selects the active tool.
func (s *Session) SetTool(t Tool) error {
	next, err := s.ed.SetTool(t)
	if err != nil {
		return err
	}
	s.ed = next
	return nil
}

// Load replaces the document with blocks.
func (s *Session) Load(blocks []block.Block) error {
	next, err := s.ed.Load(blocks)
	if err != nil {
		return err
	}
	s.ed = next
	s.debug("document loaded", "blocks", len(blocks))
	return nil
}

// Reset clears the document.
func (s *Session) Reset() {
	s.ed = s.ed.Reset()
	s.debug("document reset")
}

// Render draws the current state onto surf.
func (s *Session) Render(surf render.Surface, background image.Image, opts ...render.Option) render.Result {
	if s.logger != nil {
		opts = append([]render.Option{render.WithLogger(s.logger)}, opts...)
	}
	return render.Render(surf, s.ed.Frame(background), opts...)
}

func (s *Session) apply(ev Event, next Editor, fx Effects) Effects {
	from := s.ed.state
	s.ed = next

	hooks := observability.Editor()
	if fx.Ignored {
		hooks.OnIgnored(from.String(), string(ev))
		return fx
	}
	if from != next.state {
		hooks.OnTransition(from.String(), next.state.String(), string(ev))
		s.debug("transition", "event", ev, "from", from, "to", next.state, "active", next.activeID)
	}
	if fx.Err != nil && ev != EventCommit {
		s.warn(string(ev)+" failed", "err", fx.Err)
	}
	return fx
}

func (s *Session) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

func (s *Session) warn(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, keyvals...)
	}
}
