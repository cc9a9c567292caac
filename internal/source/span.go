package source

import "fmt"

// Span is a byte range into a File's content. A zero Length marks a point.
type Span struct {
	Offset uint32
	Length uint32
}

// NewSpan returns the span covering [start, end).
func NewSpan(start, end uint32) Span {
	if end < start {
		end = start
	}
	return Span{Offset: start, Length: end - start}
}

// Point returns a zero-width span at offset.
func Point(offset uint32) Span {
	return Span{Offset: offset}
}

// End returns the exclusive end offset.
func (s Span) End() uint32 {
	return s.Offset + s.Length
}

// Empty reports whether the span is a zero-width point.
func (s Span) Empty() bool {
	return s.Length == 0
}

// Within reports whether the span fits inside content of the given size.
// Points are allowed at the very end so that "end of input" stays addressable.
func (s Span) Within(size int) bool {
	return int(s.End()) <= size
}

func (s Span) String() string {
	return fmt.Sprintf("%d+%d", s.Offset, s.Length)
}
