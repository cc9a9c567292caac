package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/gdlint/internal/source"
)

func TestTypedFunctionSignature_PartiallyTyped(t *testing.T) {
	t.Parallel()
	got := lint(t, "func f(a, b: int) -> void:\n\tpass\n", TypedFunctionSignature())

	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, CodeTypedSignature, d.Code())
	assert.Equal(t, "function signatures should be fully typed", d.Message())
	require.Equal(t, 1, d.LabelCount())
	assert.Equal(t, "parameter is missing a type annotation", d.Label(0).Text)
	assert.Equal(t, []string{"a"}, labelText(d))
}

func TestTypedFunctionSignature_FullyTyped(t *testing.T) {
	t.Parallel()
	src := "func f(a: int, b := 2, c: String = \"x\") -> void:\n\tpass\n\nfunc g() -> int:\n\treturn 1\n"
	assert.Empty(t, lint(t, src, TypedFunctionSignature()))
}

func TestTypedFunctionSignature_MissingReturnType(t *testing.T) {
	t.Parallel()
	src := "func f(a: int):\n\tpass\n"
	got := lint(t, src, TypedFunctionSignature())

	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].LabelCount())
	l := got[0].Label(0)
	assert.Equal(t, "function is missing a return type", l.Text)
	assert.True(t, l.Primary)
	// Zero-width, just past the closing parenthesis.
	assert.Equal(t, source.Point(14), l.Span)
	assert.Equal(t, byte(')'), src[l.Span.Offset-1])
}

func TestTypedFunctionSignature_AllLabelsInOneDiagnostic(t *testing.T) {
	t.Parallel()
	got := lint(t, "func f(a, b, c = 1):\n\tpass\n", TypedFunctionSignature())

	require.Len(t, got, 1)
	d := got[0]
	require.Equal(t, 4, d.LabelCount())
	assert.Equal(t, "function is missing a return type", d.Label(0).Text)
	assert.Equal(t, []string{"", "a", "b", "c = 1"}, labelText(d))
}

func TestTypedFunctionSignature_OneDiagnosticPerFunction(t *testing.T) {
	t.Parallel()
	src := "func first(a) -> void:\n\tpass\n\nfunc typed(a: int) -> void:\n\tpass\n\nfunc second():\n\tpass\n"
	got := lint(t, src, TypedFunctionSignature())

	require.Len(t, got, 2)
	assert.Equal(t, []string{"a"}, labelText(got[0]))
	assert.Equal(t, []string{""}, labelText(got[1]))
}

func TestTypedFunctionSignature_Variadic(t *testing.T) {
	t.Parallel()
	assert.Empty(t, lint(t, "func f(...args: Array) -> void:\n\tpass\n", TypedFunctionSignature()))

	got := lint(t, "func f(...args) -> void:\n\tpass\n", TypedFunctionSignature())
	require.Len(t, got, 1)
	assert.Equal(t, []string{"...args"}, labelText(got[0]))
}

func TestTypedFunctionSignature_TopLevelOnly(t *testing.T) {
	t.Parallel()
	src := "class Inner:\n\tfunc g(a):\n\t\tpass\n"
	assert.Empty(t, lint(t, src, TypedFunctionSignature()))
}

func TestTypedFunctionSignature_StaticAndAnnotated(t *testing.T) {
	t.Parallel()
	src := "static func make(x):\n\tpass\n\n@rpc\nfunc apply(y: int):\n\tpass\n"
	got := lint(t, src, TypedFunctionSignature())

	require.Len(t, got, 2)
	assert.Equal(t, []string{"", "x"}, labelText(got[0]))
	assert.Equal(t, []string{""}, labelText(got[1]))
}
