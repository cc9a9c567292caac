package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	sitter "github.com/smacker/go-tree-sitter"
)

// DumpOptions controls Dump.
type DumpOptions struct {
	// MaxDepth stops descending below this depth; negative means no limit.
	MaxDepth int
	// Width truncates node text to this many columns; zero omits text.
	Width int
	// Anonymous includes punctuation and keyword nodes.
	Anonymous bool
}

// Dump writes one line per node: indentation by depth, the node kind, its
// depth, its 1-based line:col range, and its text truncated to Width.
//
//	source [0] 1:1-3:1
//	  extends_statement [1] 1:1-1:13 "extends Node"
func Dump(w io.Writer, root *sitter.Node, src []byte, opts DumpOptions) error {
	bw := bufio.NewWriter(w)
	dumpNode(bw, root, src, opts, 0)
	return bw.Flush()
}

func dumpNode(w io.Writer, n *sitter.Node, src []byte, opts DumpOptions, depth int) {
	start, end := n.StartPoint(), n.EndPoint()
	kind := n.Type()
	if n.IsMissing() {
		kind = "MISSING " + kind
	}
	fmt.Fprintf(w, "%s%s [%d] %d:%d-%d:%d",
		strings.Repeat("  ", depth), kind, depth,
		start.Row+1, start.Column+1, end.Row+1, end.Column+1)
	if opts.Width > 0 {
		text := strings.ReplaceAll(Text(n, src), "\n", "⏎")
		fmt.Fprintf(w, " %q", runewidth.Truncate(text, opts.Width, "…"))
	}
	fmt.Fprintln(w)

	if opts.MaxDepth >= 0 && depth >= opts.MaxDepth {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !opts.Anonymous && !child.IsNamed() {
			continue
		}
		dumpNode(w, child, src, opts, depth+1)
	}
}
