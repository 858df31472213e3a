package scene

import (
	"strings"
	"testing"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

const drawTitle = `
scene = "certificate.toml"

[[events]]
kind = "tool"
tool = "text"

[[events]]
kind = "down"
x = 50
y = 50

[[events]]
kind = "move"
x = 150
y = 100

[[events]]
kind = "up"
x = 150
y = 100

[[events]]
kind = "commit"
text = "Hello"
`

func TestReadScript(t *testing.T) {
	s, err := ReadScript(strings.NewReader(drawTitle))
	if err != nil {
		t.Fatalf("ReadScript() error = %v", err)
	}
	if len(s.Events) != 5 {
		t.Fatalf("len(Events) = %d, want 5", len(s.Events))
	}
	if s.Events[2].Kind != EventMove || s.Events[2].Point() != (geom.Point{X: 150, Y: 100}) {
		t.Errorf("Events[2] = %+v", s.Events[2])
	}
	if s.Events[4].Text != "Hello" {
		t.Errorf("commit text = %q", s.Events[4].Text)
	}
	if got := s.ScenePath("/work/scripts/draw.toml"); got != "/work/scripts/certificate.toml" {
		t.Errorf("ScenePath() = %q", got)
	}
}

func TestReadScriptErrors(t *testing.T) {
	tests := map[string]string{
		"unknown kind": "[[events]]\nkind = \"click\"",
		"tool missing": "[[events]]\nkind = \"tool\"",
		"unknown key":  "[[events]]\nkind = \"down\"\nz = 3",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadScript(strings.NewReader(doc)); !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("ReadScript() error = %v, want INVALID_SCENE", err)
			}
		})
	}
}
