package render

import (
	"encoding/json"
	"io"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/diag"
)

type jsonReport struct {
	Files   []jsonFile     `json:"files"`
	Summary gdlint.Summary `json:"summary"`
}

type jsonFile struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// jsonDiagnostic is the wire form plus the resolved position of its anchor.
type jsonDiagnostic struct {
	diag.Wire
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// JSON writes every result as one indented document:
//
//	{"files": [{"path", "error"?, "diagnostics": [...]}], "summary": {...}}
//
// Offsets in labels are bytes; line and column are 1-based.
func JSON(w io.Writer, results []gdlint.FileResult) error {
	report := jsonReport{
		Files:   make([]jsonFile, 0, len(results)),
		Summary: gdlint.Summarize(results),
	}
	for _, r := range results {
		f := jsonFile{Path: r.Path, Diagnostics: make([]jsonDiagnostic, 0, len(r.Diagnostics))}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		for _, d := range r.Diagnostics {
			pos := r.File.Position(d.Anchor().Offset)
			f.Diagnostics = append(f.Diagnostics, jsonDiagnostic{
				Wire:   d.Wire(),
				Line:   pos.Line,
				Column: pos.Col,
			})
		}
		report.Files = append(report.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
