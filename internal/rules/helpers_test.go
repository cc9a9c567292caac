package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// lint parses src and runs the given checks over it.
func lint(t *testing.T, src string, checks ...Check) []diag.Diagnostic {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	require.False(t, tree.HasError(), "test source does not parse cleanly:\n%s", src)
	return Run(checks, tree.Root(), source.NewFile("test.gd", []byte(src)))
}

// labelText returns the source text under each label of d.
func labelText(d diag.Diagnostic) []string {
	out := make([]string, d.LabelCount())
	for i := range out {
		out[i] = string(d.File().Slice(d.Label(i).Span))
	}
	return out
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i, d := range ds {
		out[i] = d.Code()
	}
	return out
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
