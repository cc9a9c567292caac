package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/gdlint/internal/source"
)

func TestClassNameExtends_Swapped(t *testing.T) {
	t.Parallel()
	got := lint(t, "extends Node\nclass_name Player\n", ClassNameExtends())

	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, CodeClassNameExtends, d.Code())
	assert.Equal(t, "class_name should precede extends", d.Message())
	require.Equal(t, 2, d.LabelCount())

	assert.Equal(t, "swap this", d.Label(0).Text)
	assert.Equal(t, source.NewSpan(0, 12), d.Label(0).Span)
	assert.False(t, d.Label(0).Primary)

	assert.Equal(t, "with this", d.Label(1).Text)
	assert.True(t, d.Label(1).Primary)
	assert.Equal(t, []string{"extends Node", "class_name Player"}, labelText(d))
}

func TestClassNameExtends_NoFinding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"correct order", "class_name Player\nextends Node\n"},
		{"single line", "class_name Player extends Node\n"},
		{"extends only", "extends Node\n"},
		{"class_name only", "class_name Player\n"},
		{"neither", "var speed := 1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, lint(t, tt.src, ClassNameExtends()))
		})
	}
}
