package gdlint

import (
	"errors"
	"time"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/source"
)

var (
	// ErrParse marks a file the parser could only recover from with errors.
	// No checks run on such a file.
	ErrParse = errors.New("syntax error")

	// ErrInvalidUTF8 marks a file whose content is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path string
	// File is the source the diagnostics refer to. It is nil when the file
	// could not be read or decoded.
	File        *source.File
	Diagnostics []diag.Diagnostic
	// Err is set when the file was skipped. Diagnostics is then empty.
	Err      error
	Duration time.Duration
}

// OK reports whether the file was checked and produced no diagnostics.
func (r FileResult) OK() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

// Summary aggregates a set of results.
type Summary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	Failed          int `json:"failed"`
	Issues          int `json:"issues"`
}

// Clean reports whether nothing was found and nothing failed.
func (s Summary) Clean() bool {
	return s.Failed == 0 && s.Issues == 0
}

func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case len(r.Diagnostics) > 0:
			s.FilesWithIssues++
			s.Issues += len(r.Diagnostics)
		}
	}
	return s
}
