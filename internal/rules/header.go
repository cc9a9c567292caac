package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/query"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// ClassNameExtends reports an extends statement that precedes class_name.
func ClassNameExtends() Check {
	return Check{
		Name:        string(CodeClassNameExtends),
		Codes:       []diag.Code{CodeClassNameExtends},
		Description: "class_name should precede extends",
		Run:         checkClassNameExtends,
	}
}

func checkClassNameExtends(root *sitter.Node, file *source.File) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, m := range headerQuery.Run(root, file.Content, query.Children) {
		out = append(out, diag.Warning(CodeClassNameExtends, "class_name should precede extends").
			Label(syntax.SpanOf(m.Extends), "swap this").
			Primary(syntax.SpanOf(m.ClassName), "with this").
			URL(styleGuideURL+"#code-order").
			Build(file))
	}
	return out
}
