package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Tree is a parsed GDScript module. It is read-only once returned.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src with the GDScript grammar. A tree with syntax errors is
// still returned; callers decide what to do with it via HasError.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse: %w", err)
	}
	return &Tree{tree: tree, src: src}, nil
}

// Root returns the module node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// HasError reports whether the parser had to recover from structural errors.
func (t *Tree) HasError() bool {
	return t.Root().HasError()
}

// FirstError returns the first ERROR or MISSING node in document order, or
// nil when the tree is clean.
func (t *Tree) FirstError() *sitter.Node {
	if !t.HasError() {
		return nil
	}
	return firstError(t.Root())
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

// Close releases the underlying tree. It is safe to call more than once.
func (t *Tree) Close() {
	t.tree.Close()
}
