package store

import (
	"time"

	"github.com/jward/gdlint/internal/diag"
)

// Status summarises how a file fared.
type Status string

const (
	StatusOK     Status = "ok"
	StatusIssues Status = "issues"
	StatusError  Status = "error"
)

type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Root       string
	Files      int
	Failed     int
	Issues     int
}

type FileRecord struct {
	ID          int64
	RunID       int64
	Path        string
	Hash        string
	Status      Status
	Error       string
	Diagnostics []DiagnosticRecord
}

type DiagnosticRecord struct {
	ID       int64
	Severity diag.Severity
	Code     string
	Message  string
	Help     string
	URL      string
	// Line and Col locate the primary label, 1-based.
	Line   int
	Col    int
	Labels []diag.Label
}

type CodeCount struct {
	Code  string
	Count int
}
