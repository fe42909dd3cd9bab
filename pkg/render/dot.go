package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// Options controls DOT generation.
type Options struct {
	// Detailed adds the source file and entity kind to each node label.
	Detailed bool
}

// flipY mirrors a box's vertical center against the layout height.
// Graphviz grows y upward while layouts grow it downward.
func flipY(l graph.Layout, y, h float64) float64 {
	return l.Height - (y + h/2)
}

// ToDOT serializes a positioned layout as a Graphviz digraph. Every node is
// pinned at its computed center, so rendering with the neato engine
// reproduces the layout exactly. Containers become dashed boxes drawn
// behind their member entities.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer

	buf.WriteString("digraph callgraph {\n")
	buf.WriteString("  graph [layout=neato, splines=line, bgcolor=\"#fafafa\", outputorder=nodesfirst];\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#ffffff\", fontname=\"Helvetica\", fontsize=11, pin=true, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.7];\n\n")

	for i, c := range l.Containers {
		cx := c.X + c.Width/2
		cy := flipY(l, c.Y, c.Height)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=dashed, fillcolor=none, pos=\"%g,%g!\", width=%g, height=%g];\n",
			fmt.Sprintf("__container_%d", i), c.File, cx, cy, c.Width/72, c.Height/72)
	}
	if len(l.Containers) > 0 {
		buf.WriteString("\n")
	}

	for _, e := range l.Entities {
		label := e.DisplayLabel()
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s · %s", label, e.Kind, e.File)
		}
		cx := e.X + e.Width/2
		cy := flipY(l, e.Y, e.Height)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%g,%g!\", width=%g, height=%g%s];\n",
			e.ID, label, cx, cy, e.Width/72, e.Height/72, nodeStyle(e))
	}
	buf.WriteString("\n")

	for _, edge := range l.Edges {
		var attrs []string
		if edge.IsUse() {
			attrs = append(attrs, "style=dotted")
		}
		if edge.CallOrder > 0 {
			attrs = append(attrs, fmt.Sprintf("xlabel=\"%d\", fontsize=9", edge.CallOrder))
		}
		if edge.ReturnOrder > 0 {
			attrs = append(attrs, fmt.Sprintf("tooltip=\"returns #%d\"", edge.ReturnOrder))
		}
		suffix := ""
		if len(attrs) > 0 {
			suffix = " [" + strings.Join(attrs, ", ") + "]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", edge.Source, edge.Target, suffix)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeStyle(e graph.Entity) string {
	if e.IsDeclaration() {
		return ", fillcolor=\"#eef4ff\""
	}
	return ""
}

// RenderSVG converts DOT source to SVG bytes using the embedded Graphviz
// engine. No external binary is required.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parsing DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("rendering SVG: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	widthRe  = regexp.MustCompile(`width="[^"]*"`)
	heightRe = regexp.MustCompile(`height="[^"]*"`)
)

// normalizeViewBox strips the fixed pixel width/height Graphviz emits so the
// SVG scales to its container, keeping only the viewBox.
func normalizeViewBox(svg []byte) []byte {
	idx := bytes.Index(svg, []byte("<svg"))
	if idx < 0 {
		return svg
	}
	end := bytes.IndexByte(svg[idx:], '>')
	if end < 0 {
		return svg
	}
	tag := svg[idx : idx+end]
	tag = widthRe.ReplaceAll(tag, []byte(`width="100%"`))
	tag = heightRe.ReplaceAll(tag, []byte(`height="100%"`))

	var out bytes.Buffer
	out.Write(svg[:idx])
	out.Write(tag)
	out.Write(svg[idx+end:])
	return out.Bytes()
}
