package block

import (
	"testing"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

func TestNewTextBlock(t *testing.T) {
	b, err := New(Text, geom.Point{X: 50, Y: 50}, geom.Dimensions{Width: 50, Height: 24})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.ID == "" {
		t.Error("New() left ID empty")
	}
	if b.Text != "" {
		t.Errorf("Text = %q, want empty", b.Text)
	}
	if b.Style != DefaultStyle() {
		t.Errorf("Style = %+v, want %+v", b.Style, DefaultStyle())
	}
	want := geom.Box{X: 50, Y: 50, Width: 50, Height: 24}
	if b.Box != want {
		t.Errorf("Box = %v, want %v", b.Box, want)
	}
	if !b.IsText() {
		t.Error("IsText() = false, want true")
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		b, err := New(Text, geom.Point{}, geom.Dimensions{Width: 1, Height: 1})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(Type("ellipse"), geom.Point{}, geom.Dimensions{Width: 1, Height: 1})
	if !errors.Is(err, errors.ErrCodeInvalidBlockType) {
		t.Errorf("New(ellipse) error = %v, want %v", err, errors.ErrCodeInvalidBlockType)
	}
}

func TestNewOptions(t *testing.T) {
	style := DefaultStyle()
	style.Align = AlignCenter
	b, err := New(Text, geom.Point{}, geom.Dimensions{Width: 10, Height: 10},
		WithID("title"), WithStyle(style), WithText("Certificate"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.ID != "title" || b.Text != "Certificate" || b.Style.Align != AlignCenter {
		t.Errorf("New() = %+v, options not applied", b)
	}
}

func TestNewRejectsInvalidStyle(t *testing.T) {
	style := DefaultStyle()
	style.VerticalAlign = "middle"
	_, err := New(Text, geom.Point{}, geom.Dimensions{}, WithStyle(style))
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("New() error = %v, want %v", err, errors.ErrCodeInvalidStyle)
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType("text"); err != nil || got != Text {
		t.Errorf("ParseType(text) = %v, %v", got, err)
	}
	if _, err := ParseType("TEXT"); err == nil {
		t.Error("ParseType(TEXT) = nil error, want error")
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Style)
		wantErr bool
	}{
		{"default", func(*Style) {}, false},
		{"right hanging", func(s *Style) { s.Align = AlignRight; s.VerticalAlign = VAlignHanging }, false},
		{"zero size", func(s *Style) { s.FontSize = 0 }, true},
		{"empty family", func(s *Style) { s.FontFamily = "" }, true},
		{"bad color", func(s *Style) { s.Color = "black" }, true},
		{"bad align", func(s *Style) { s.Align = "justify" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	a := Block{ID: "a", Type: Text, Style: DefaultStyle()}
	b := Block{ID: "b", Type: Text, Style: DefaultStyle()}

	if err := ValidateAll([]Block{a, b}); err != nil {
		t.Errorf("ValidateAll() error = %v", err)
	}
	if err := ValidateAll([]Block{a, a}); !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("ValidateAll(dup) error = %v, want %v", err, errors.ErrCodeDuplicateID)
	}
	bad := Block{ID: "c", Type: "rect", Style: DefaultStyle()}
	if err := ValidateAll([]Block{a, bad}); !errors.Is(err, errors.ErrCodeInvalidBlockType) {
		t.Errorf("ValidateAll(bad type) error = %v, want %v", err, errors.ErrCodeInvalidBlockType)
	}
}

func TestIndex(t *testing.T) {
	blocks := []Block{{ID: "a"}, {ID: "b"}}
	if got := Index(blocks, "b"); got != 1 {
		t.Errorf("Index(b) = %d, want 1", got)
	}
	if got := Index(blocks, "zz"); got != -1 {
		t.Errorf("Index(zz) = %d, want -1", got)
	}
	if got := Index(blocks, ""); got != -1 {
		t.Errorf("Index(\"\") = %d, want -1", got)
	}
}
