package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/query"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// DeclarationOrder reports top-level members that are out of the style guide
// order, and top-level statements that have no place in it.
func DeclarationOrder() Check {
	return Check{
		Name:        string(CodeDeclarationOrder),
		Codes:       []diag.Code{CodeDeclarationOrder, CodeUnknownOrder},
		Description: "top-level members follow the style guide code order",
		Run:         checkDeclarationOrder,
	}
}

type spanKey struct {
	start, end uint32
}

func keyOf(n *sitter.Node) spanKey {
	return spanKey{start: n.StartByte(), end: n.EndByte()}
}

func checkDeclarationOrder(root *sitter.Node, file *source.File) []diag.Diagnostic {
	src := file.Content

	annotations := make(map[spanKey][]string)
	for _, m := range annotationQuery.Run(root, src, query.Grandchildren) {
		owner := m.List.Parent()
		if owner == nil {
			continue
		}
		key := keyOf(owner)
		annotations[key] = append(annotations[key], syntax.Text(m.Name, src))
	}

	matches := declarationQuery.Run(root, src, query.Children)
	nodes := make([]*sitter.Node, len(matches))
	for i, m := range matches {
		nodes[i] = m.Node
	}
	decls := classify(nodes, src, annotations)

	bag := diag.NewBag()
	var (
		ranked []declaration
		ranks  []Rank
	)
	for _, d := range decls {
		switch d.kind.Triage() {
		case Unknown:
			bag.Add(diag.Warning(CodeUnknownOrder, "top-level statement has no place in the code order").
				Primary(syntax.SpanOf(d.node), fmt.Sprintf("unrecognised %s", d.node.Type())).
				Help("only declarations, annotations and comments belong at the top level of a script").
				Build(file))
			continue
		case Unranked:
			continue
		}

		rank := d.kind.Rank()
		if j, ok := firstHigher(ranks, rank); ok {
			prev := ranked[j]
			bag.Add(diag.Warning(CodeDeclarationOrder, fmt.Sprintf("%s declared after %s", d.kind, prev.kind)).
				Label(syntax.SpanOf(prev.node), "should come after").
				Primary(syntax.SpanOf(d.node), fmt.Sprintf("this %s should come before the %s", d.kind, prev.kind)).
				URL(styleGuideURL+"#code-order").
				Build(file))
		}
		ranked = append(ranked, d)
		ranks = append(ranks, rank)
	}
	return bag.Items()
}

// firstHigher scans ranks backwards and returns the index of the nearest
// rank strictly above rank. Equal ranks never conflict.
func firstHigher(ranks []Rank, rank Rank) (int, bool) {
	for j := len(ranks) - 1; j >= 0; j-- {
		if ranks[j] > rank {
			return j, true
		}
	}
	return 0, false
}
