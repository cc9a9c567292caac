package query

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/syntax"
)

// field binds one capture to a setter on the record type.
type field[T any] struct {
	capture  string
	required bool
	set      func(*T, *sitter.Node)
}

// Builder collects a query definition. It is consumed by Build.
type Builder[T any] struct {
	name    string
	pattern string
	anchor  string
	fields  []field[T]
}

// Define starts a query named name over pattern, decoding into T.
func Define[T any](name, pattern string) *Builder[T] {
	return &Builder[T]{name: name, pattern: pattern}
}

// Anchor names the capture bound to the pattern's outermost node. Every query
// needs one; it is what the depth bound is measured against.
func (b *Builder[T]) Anchor(capture string) *Builder[T] {
	b.anchor = capture
	return b
}

// Required declares a capture that every match must bind.
func (b *Builder[T]) Required(capture string, set func(*T, *sitter.Node)) *Builder[T] {
	b.fields = append(b.fields, field[T]{capture: capture, required: true, set: set})
	return b
}

// Optional declares a capture that may be absent; set is only called when it
// is bound.
func (b *Builder[T]) Optional(capture string, set func(*T, *sitter.Node)) *Builder[T] {
	b.fields = append(b.fields, field[T]{capture: capture, set: set})
	return b
}

// Build checks the capture list for internal consistency and returns the
// query. The pattern itself is not compiled until first use.
func (b *Builder[T]) Build() *Query[T] {
	if b.anchor == "" {
		panic(&DefinitionError{Query: b.name, Reason: "no anchor capture"})
	}
	seen := map[string]bool{b.anchor: true}
	for _, f := range b.fields {
		if f.set == nil {
			panic(&DefinitionError{Query: b.name, Reason: fmt.Sprintf("capture @%s has no setter", f.capture)})
		}
		if f.capture == b.anchor {
			continue
		}
		if seen[f.capture] {
			panic(&DefinitionError{Query: b.name, Reason: fmt.Sprintf("capture @%s declared twice", f.capture)})
		}
		seen[f.capture] = true
	}
	return &Query[T]{
		name:    b.name,
		pattern: b.pattern,
		anchor:  b.anchor,
		fields:  append([]field[T](nil), b.fields...),
	}
}

// Query is a compiled-on-demand pattern with a typed decoder. It is safe for
// concurrent use.
type Query[T any] struct {
	name    string
	pattern string
	anchor  string
	fields  []field[T]

	once     sync.Once
	compiled *sitter.Query
	names    []string
	err      error
}

// Name returns the query's name.
func (q *Query[T]) Name() string { return q.name }

// Pattern returns the query source.
func (q *Query[T]) Pattern() string { return q.pattern }

// Compile compiles the pattern if that has not happened yet and reports the
// outcome. The result is cached, including failures.
func (q *Query[T]) Compile() error {
	q.once.Do(func() {
		q.compiled, q.names, q.err = q.compile()
	})
	return q.err
}

// MustCompile is Compile that panics on failure.
func (q *Query[T]) MustCompile() *Query[T] {
	if err := q.Compile(); err != nil {
		panic(err)
	}
	return q
}

func (q *Query[T]) compile() (*sitter.Query, []string, error) {
	compiled, err := sitter.NewQuery([]byte(q.pattern), syntax.Language())
	if err != nil {
		offset := -1
		var qerr *sitter.QueryError
		if errors.As(err, &qerr) {
			offset = int(qerr.Offset)
		}
		return nil, nil, &CompileError{Query: q.name, Offset: offset, Err: err}
	}

	names := make([]string, compiled.CaptureCount())
	present := make(map[string]bool, len(names))
	for i := range names {
		names[i] = compiled.CaptureNameForId(uint32(i))
		present[names[i]] = true
	}

	declared := map[string]bool{q.anchor: true}
	for _, f := range q.fields {
		declared[f.capture] = true
	}
	for name := range declared {
		if !present[name] {
			compiled.Close()
			return nil, nil, &DefinitionError{Query: q.name, Reason: fmt.Sprintf("capture @%s not in pattern", name)}
		}
	}
	for _, name := range names {
		// Captures prefixed with an underscore only feed predicates.
		if !declared[name] && !strings.HasPrefix(name, "_") {
			compiled.Close()
			return nil, nil, &DefinitionError{Query: q.name, Reason: fmt.Sprintf("pattern capture @%s is not declared", name)}
		}
	}
	return compiled, names, nil
}

// Matches runs the query under root and returns the raw matches in discovery
// order. Matches rejected by predicates, and matches whose anchor lies deeper
// than depth, are dropped.
func (q *Query[T]) Matches(root *sitter.Node, src []byte, depth Depth) []Match {
	q.MustCompile()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.compiled, root)

	var out []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, src)
		if len(m.Captures) == 0 {
			continue
		}

		match := Match{Pattern: m.PatternIndex, captures: make(map[string][]*sitter.Node, len(m.Captures))}
		for _, c := range m.Captures {
			name := q.names[c.Index]
			match.captures[name] = append(match.captures[name], c.Node)
		}

		anchor, ok := match.Node(q.anchor)
		if !ok {
			panic(&MissingCaptureError{Query: q.name, Capture: q.anchor})
		}
		if depth != Unbounded {
			if _, within := syntax.Depth(anchor, root, int(depth)); !within {
				continue
			}
		}
		out = append(out, match)
	}
	return out
}

// Run runs the query and decodes every match into a record.
func (q *Query[T]) Run(root *sitter.Node, src []byte, depth Depth) []T {
	matches := q.Matches(root, src, depth)
	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, q.Decode(m))
	}
	return out
}

// Decode converts one match into a record.
func (q *Query[T]) Decode(m Match) T {
	var rec T
	for _, f := range q.fields {
		node, ok := m.Node(f.capture)
		if !ok {
			if f.required {
				panic(&MissingCaptureError{Query: q.name, Capture: f.capture})
			}
			continue
		}
		f.set(&rec, node)
	}
	return rec
}
