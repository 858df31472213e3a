package editor_test

import (
	"fmt"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/editor"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

func ExampleEditor() {
	measure := textfit.MeasureFunc(func(text string, f textfit.FontSpec) (textfit.Metrics, error) {
		return textfit.Metrics{Width: float64(len(text)) * f.Size / 2, Ascent: f.Size * 3 / 4}, nil
	})

	e, _ := editor.New(editor.WithIDFunc(func() string { return "title" })).SetTool(editor.CreateTool(block.Text))
	e, _ = e.PointerDown(geom.Point{X: 50, Y: 50})
	e, _ = e.PointerMove(geom.Point{X: 150, Y: 100})
	e, fx := e.PointerUp(geom.Point{X: 150, Y: 100})
	fmt.Println(e.State(), fx.Edit.BlockID, e.Blocks()[0].Box)

	e, _ = e.CommitText(fx.Edit.BlockID, "Certificate", measure)
	b := e.Blocks()[0]
	fmt.Println(e.State(), b.Text, b.Box)
	// Output:
	// EditingText title {x:50 y:50 w:100 h:50}
	// Idle Certificate {x:50 y:50 w:99 h:13.5}
}
