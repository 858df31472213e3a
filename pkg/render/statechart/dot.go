package statechart

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blockcanvas/pkg/editor"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds guards and actions to the edge labels.
	Detailed bool
	// Current, when set, highlights that state.
	Current *editor.State
}

// ToDOT converts a transition table to Graphviz DOT.
func ToDOT(ts []editor.Transition, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph editor {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  start [shape=point, width=0.15];\n")
	fmt.Fprintf(&buf, "  start -> %q;\n\n", editor.Idle.String())

	for _, s := range editor.States {
		attrs := ""
		if opts.Current != nil && *opts.Current == s {
			attrs = " [fillcolor=\"#ffe08a\", penwidth=2]"
		}
		fmt.Fprintf(&buf, "  %q%s;\n", s.String(), attrs)
	}

	buf.WriteString("\n")
	for _, t := range ts {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.From.String(), t.To.String(), edgeLabel(t, opts.Detailed))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeLabel(t editor.Transition, detailed bool) string {
	label := string(t.Event)
	if !detailed {
		return label
	}
	if t.Guard != "" {
		label += " [" + t.Guard + "]"
	}
	if t.Action != "" {
		label += "\n/ " + t.Action
	}
	return label
}

// RenderSVG lays out DOT source and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container instead of using Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
