package rules

import (
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/query"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// NoPrint reports every call of a banned free function, at any depth.
func NoPrint(banned []string) Check {
	banned = slices.Clone(banned)
	return Check{
		Name:        string(CodeNoPrint),
		Codes:       []diag.Code{CodeNoPrint},
		Description: "calls to " + strings.Join(banned, ", ") + " are discouraged",
		Run: func(root *sitter.Node, file *source.File) []diag.Diagnostic {
			return checkNoPrint(root, file, banned)
		},
	}
}

func checkNoPrint(root *sitter.Node, file *source.File, banned []string) []diag.Diagnostic {
	bag := diag.NewBag()
	for _, m := range callQuery.Run(root, file.Content, query.Unbounded) {
		callee := syntax.Text(m.Callee, file.Content)
		if !slices.Contains(banned, callee) {
			continue
		}
		bag.Add(diag.Warning(CodeNoPrint, "calling "+callee+" is discouraged, use a custom logger").
			Primary(syntax.SpanOf(m.Callee), "remove this call").
			Build(file))
	}
	return bag.Items()
}
