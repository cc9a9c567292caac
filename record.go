package gdlint

import (
	"time"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/store"
)

// Record converts a finished run into store rows for Store.RecordRun.
func Record(root string, started, finished time.Time, results []FileResult) (*store.Run, []store.FileRecord) {
	sum := Summarize(results)
	run := &store.Run{
		StartedAt:  started,
		FinishedAt: finished,
		Root:       root,
		Files:      sum.Files,
		Failed:     sum.Failed,
		Issues:     sum.Issues,
	}

	files := make([]store.FileRecord, 0, len(results))
	for _, r := range results {
		rec := store.FileRecord{Path: r.Path, Status: store.StatusOK}
		if r.File != nil {
			rec.Hash = r.File.Hash()
		}
		switch {
		case r.Err != nil:
			rec.Status = store.StatusError
			rec.Error = r.Err.Error()
		case len(r.Diagnostics) > 0:
			rec.Status = store.StatusIssues
		}
		for _, d := range r.Diagnostics {
			rec.Diagnostics = append(rec.Diagnostics, diagnosticRecord(r.File, d))
		}
		files = append(files, rec)
	}
	return run, files
}

func diagnosticRecord(file *source.File, d diag.Diagnostic) store.DiagnosticRecord {
	pos := file.Position(d.Anchor().Offset)
	return store.DiagnosticRecord{
		Severity: d.Severity(),
		Code:     d.Code().String(),
		Message:  d.Message(),
		Help:     d.Help(),
		URL:      d.URL(),
		Line:     int(pos.Line),
		Col:      int(pos.Col),
		Labels:   d.Labels(),
	}
}
