package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/source"
)

// SpanOf returns the byte span covered by n.
func SpanOf(n *sitter.Node) source.Span {
	return source.NewSpan(n.StartByte(), n.EndByte())
}

// StartOf returns a zero-width span at the start of n.
func StartOf(n *sitter.Node) source.Span {
	return source.Point(n.StartByte())
}

// EndOf returns a zero-width span at the end of n.
func EndOf(n *sitter.Node) source.Span {
	return source.Point(n.EndByte())
}

// Text returns the source text covered by n.
func Text(n *sitter.Node, src []byte) string {
	return n.Content(src)
}

// Line returns the 0-based row n starts on.
func Line(n *sitter.Node) uint32 {
	return n.StartPoint().Row
}

// EndLine returns the 0-based row n ends on.
func EndLine(n *sitter.Node) uint32 {
	return n.EndPoint().Row
}

// ChildOfKind returns the first direct child of n whose kind is kind.
// Anonymous children are included so that keyword tokens can be found.
func ChildOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

// SameNode reports whether a and b are the same node of the same tree.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

// Depth returns how many parent steps separate n from ancestor, giving up
// once limit steps have been taken. ok is false when ancestor was not reached.
func Depth(n, ancestor *sitter.Node, limit int) (depth int, ok bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if SameNode(cur, ancestor) {
			return depth, true
		}
		if limit >= 0 && depth >= limit {
			return depth, false
		}
		depth++
	}
	return depth, false
}
