package query

import "fmt"

// CompileError reports a pattern that tree-sitter rejected.
type CompileError struct {
	Query  string
	Offset int // byte offset into the pattern, -1 when unknown
	Err    error
}

func (e *CompileError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("query %s: invalid pattern: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("query %s: invalid pattern at offset %d: %v", e.Query, e.Offset, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// DefinitionError reports a capture list that does not fit its pattern.
type DefinitionError struct {
	Query  string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("query %s: %s", e.Query, e.Reason)
}

// MissingCaptureError reports a match that lacks a required capture. It means
// the pattern and the grammar disagree and is never a user-facing finding.
type MissingCaptureError struct {
	Query   string
	Capture string
}

func (e *MissingCaptureError) Error() string {
	return fmt.Sprintf("query %s: required capture @%s missing from match", e.Query, e.Capture)
}
