package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	t.Parallel()
	f := NewFile("a.gd", []byte("extends Node\n\nvar x\n"))

	tests := []struct {
		offset uint32
		want   LineCol
	}{
		{0, LineCol{1, 1}},
		{8, LineCol{1, 9}},
		{12, LineCol{1, 13}}, // the newline itself
		{13, LineCol{2, 1}},
		{14, LineCol{3, 1}},
		{18, LineCol{3, 5}},
		{20, LineCol{4, 1}}, // EOF after trailing newline
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Position(tt.offset), "offset %d", tt.offset)
	}
}

func TestLineBounds(t *testing.T) {
	t.Parallel()
	f := NewFile("a.gd", []byte("one\ntwo\nthree"))

	assert.Equal(t, "one", f.Line(1))
	assert.Equal(t, "two", f.Line(2))
	assert.Equal(t, "three", f.Line(3))
	assert.Equal(t, "", f.Line(4))

	start, end := f.LineBounds(2)
	assert.Equal(t, uint32(4), start)
	assert.Equal(t, uint32(7), end)
}

func TestLine_TrailingNewline(t *testing.T) {
	t.Parallel()
	f := NewFile("a.gd", []byte("a\nb\n"))
	assert.Equal(t, "b", f.Line(2))
	assert.Equal(t, "", f.Line(3))
	assert.Equal(t, "", NewFile("a.gd", nil).Line(1))
}

func TestSpan(t *testing.T) {
	t.Parallel()
	s := NewSpan(4, 9)
	assert.Equal(t, Span{Offset: 4, Length: 5}, s)
	assert.Equal(t, uint32(9), s.End())
	assert.False(t, s.Empty())
	assert.True(t, Point(3).Empty())

	assert.True(t, s.Within(9))
	assert.False(t, s.Within(8))
	assert.True(t, Point(10).Within(10))

	// inverted ranges collapse to a point
	assert.Equal(t, Point(7), NewSpan(7, 2))
}

func TestSliceAndHash(t *testing.T) {
	t.Parallel()
	f := NewFile("a.gd", []byte("class_name Foo\n"))
	assert.Equal(t, "Foo", string(f.Slice(NewSpan(11, 14))))
	assert.Equal(t, "", string(f.Slice(NewSpan(40, 50))))

	h := f.Hash()
	require.Len(t, h, 64)
	assert.Equal(t, h, NewFile("b.gd", []byte("class_name Foo\n")).Hash())
}
