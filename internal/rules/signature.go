package rules

import (
	"cmp"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/query"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// TypedFunctionSignature reports top-level functions with an untyped
// parameter or no return type.
func TypedFunctionSignature() Check {
	return Check{
		Name:        string(CodeTypedSignature),
		Codes:       []diag.Code{CodeTypedSignature},
		Description: "function signatures should be fully typed",
		Run:         checkTypedFunctionSignature,
	}
}

// signature aggregates the per-parameter matches of one function.
type signature struct {
	returnType *sitter.Node
	paramList  *sitter.Node
	params     []*sitter.Node
	seen       map[spanKey]bool
}

func checkTypedFunctionSignature(root *sitter.Node, file *source.File) []diag.Diagnostic {
	src := file.Content

	var order []string
	groups := make(map[string]*signature)
	for _, m := range functionQuery.Run(root, src, query.Children) {
		name := syntax.Text(m.Name, src)
		sig, ok := groups[name]
		if !ok {
			sig = &signature{paramList: m.Parameters, seen: make(map[spanKey]bool)}
			groups[name] = sig
			order = append(order, name)
		}
		if sig.returnType == nil {
			sig.returnType = m.ReturnType
		}
		if p := m.Parameter; p != nil && p.Type() != "comment" && !sig.seen[keyOf(p)] {
			sig.seen[keyOf(p)] = true
			sig.params = append(sig.params, p)
		}
	}

	var out []diag.Diagnostic
	for _, name := range order {
		sig := groups[name]
		slices.SortFunc(sig.params, func(a, b *sitter.Node) int {
			return cmp.Compare(a.StartByte(), b.StartByte())
		})
		b := diag.Warning(CodeTypedSignature, "function signatures should be fully typed")
		labels := 0
		if sig.returnType == nil {
			b.Primary(syntax.EndOf(sig.paramList), "function is missing a return type")
			labels++
		}
		for _, p := range sig.params {
			if !isTyped(p) {
				b.Label(syntax.SpanOf(p), "parameter is missing a type annotation")
				labels++
			}
		}
		if labels > 0 {
			out = append(out, b.URL(styleGuideURL+"#static-typing").Build(file))
		}
	}
	return out
}

// isTyped reports whether a parameter carries a type annotation. Variadic
// parameters are judged by the parameter they wrap.
func isTyped(param *sitter.Node) bool {
	if param.Type() == "variadic_parameter" {
		if inner := param.NamedChild(0); inner != nil {
			return isTyped(inner)
		}
		return false
	}
	return param.ChildByFieldName("type") != nil
}
