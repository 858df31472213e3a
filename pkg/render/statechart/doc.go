// Package statechart draws the editor's transition table as a Graphviz
// state diagram.
//
// [ToDOT] produces DOT source from [editor.Transitions]; [RenderSVG] lays it
// out with the embedded Graphviz (WebAssembly) build of goccy/go-graphviz, so
// no system Graphviz installation is needed.
package statechart
