package scene

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// EventKind names a scripted input.
type EventKind string

const (
	EventDown   EventKind = "down"
	EventMove   EventKind = "move"
	EventUp     EventKind = "up"
	EventCommit EventKind = "commit"
	EventTool   EventKind = "tool"
	EventReset  EventKind = "reset"
)

// Event is one scripted input. X and Y are canvas coordinates for pointer
// events; Text is the committed text and Tool the tool name.
type Event struct {
	Kind EventKind `toml:"kind"`
	X    float64   `toml:"x,omitempty"`
	Y    float64   `toml:"y,omitempty"`
	Tool string    `toml:"tool,omitempty"`
	Text string    `toml:"text,omitempty"`
}

// Point returns the event position.
func (e Event) Point() geom.Point { return geom.Point{X: e.X, Y: e.Y} }

// Script is a sequence of events replayed against a scene.
type Script struct {
	// Scene is the path of the starting scene, relative to the script file.
	// Empty means an empty canvas.
	Scene  string  `toml:"scene,omitempty"`
	Events []Event `toml:"events"`
}

// Validate checks every event kind and its required fields.
func (s *Script) Validate() error {
	for i, e := range s.Events {
		switch e.Kind {
		case EventDown, EventMove, EventUp, EventCommit, EventReset:
		case EventTool:
			if e.Tool == "" {
				return errors.New(errors.ErrCodeInvalidScene, "event %d: tool event without tool", i+1)
			}
		default:
			return errors.New(errors.ErrCodeInvalidScene, "event %d: unknown kind %q", i+1, e.Kind)
		}
	}
	return nil
}

// ScenePath resolves Scene against the directory of the script file.
func (s *Script) ScenePath(scriptPath string) string {
	if s.Scene == "" || filepath.IsAbs(s.Scene) {
		return s.Scene
	}
	return filepath.Join(filepath.Dir(scriptPath), s.Scene)
}

// ReadScript decodes and validates a script from r.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	if err := decode(r, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
