package source

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
)

// File is one source buffer shared read-only by every check and every
// diagnostic produced for it.
type File struct {
	Path    string
	Content []byte

	once    sync.Once
	lineIdx []uint32 // offsets of '\n' bytes
}

// LineCol is a 1-based human-readable position. Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// NewFile binds content to a path. The content must not be modified afterwards.
func NewFile(path string, content []byte) *File {
	return &File{Path: path, Content: content}
}

// Len returns the size of the content in bytes.
func (f *File) Len() int {
	return len(f.Content)
}

// Hash returns the hex-encoded SHA-256 of the content.
func (f *File) Hash() string {
	return fmt.Sprintf("%x", sha256.Sum256(f.Content))
}

// Slice returns the bytes covered by s, clamped to the content.
func (f *File) Slice(s Span) []byte {
	start := min(int(s.Offset), len(f.Content))
	end := min(int(s.End()), len(f.Content))
	return f.Content[start:end]
}

func (f *File) lines() []uint32 {
	f.once.Do(func() {
		for i, b := range f.Content {
			if b == '\n' {
				f.lineIdx = append(f.lineIdx, uint32(i))
			}
		}
	})
	return f.lineIdx
}

// Position resolves a byte offset to a line and column.
func (f *File) Position(offset uint32) LineCol {
	idx := f.lines()
	// number of newlines strictly before offset
	line := sort.Search(len(idx), func(i int) bool { return idx[i] >= offset })
	start := uint32(0)
	if line > 0 {
		start = idx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: offset - start + 1}
}

// LineBounds returns the [start, end) byte range of a 1-based line, excluding
// the trailing newline. Lines past the end yield an empty range at EOF.
func (f *File) LineBounds(line uint32) (uint32, uint32) {
	idx := f.lines()
	size := uint32(len(f.Content))
	if line == 0 {
		return 0, 0
	}
	start := uint32(0)
	if line > 1 {
		if int(line-2) >= len(idx) {
			return size, size
		}
		start = idx[line-2] + 1
	}
	end := size
	if int(line-1) < len(idx) {
		end = idx[line-1]
	}
	return start, end
}

// Line returns the text of a 1-based line without its newline.
func (f *File) Line(line uint32) string {
	start, end := f.LineBounds(line)
	return string(f.Content[start:end])
}
