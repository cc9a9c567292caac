package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jward/gdlint/internal/diag"
)

// RecordRun stores a run with its file results and diagnostics in one
// transaction and returns the run ID. IDs are written back into run and files.
func (s *Store) RecordRun(ctx context.Context, run *Run, files []FileRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, root, files, failed, issues)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.Root, run.Files, run.Failed, run.Issues,
	)
	if err != nil {
		return 0, fmt.Errorf("record run: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run: last insert id: %w", err)
	}

	fileStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO file_results (run_id, path, hash, status, error) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("record run: prepare file: %w", err)
	}
	defer fileStmt.Close()

	diagStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (file_result_id, severity, code, message, help, url, line, col, labels)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("record run: prepare diagnostic: %w", err)
	}
	defer diagStmt.Close()

	for i := range files {
		f := &files[i]
		res, err := fileStmt.ExecContext(ctx, runID, f.Path, nullString(f.Hash), string(f.Status), nullString(f.Error))
		if err != nil {
			return 0, fmt.Errorf("record run: file %q: %w", f.Path, err)
		}
		fileID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("record run: last insert id: %w", err)
		}
		f.ID, f.RunID = fileID, runID

		for j := range f.Diagnostics {
			d := &f.Diagnostics[j]
			blob, err := encodeLabels(d.Labels)
			if err != nil {
				return 0, fmt.Errorf("record run: file %q: %w", f.Path, err)
			}
			res, err := diagStmt.ExecContext(ctx, fileID, d.Severity.String(), d.Code, d.Message,
				nullString(d.Help), nullString(d.URL), d.Line, d.Col, blob)
			if err != nil {
				return 0, fmt.Errorf("record run: diagnostic %s in %q: %w", d.Code, f.Path, err)
			}
			if d.ID, err = res.LastInsertId(); err != nil {
				return 0, fmt.Errorf("record run: last insert id: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: commit: %w", err)
	}
	run.ID = runID
	return runID, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := "SELECT id, started_at, finished_at, root, files, failed, issues FROM runs ORDER BY id DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Root, &r.Files, &r.Failed, &r.Issues); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FileResults returns the files of a run in recorded order, with their
// diagnostics.
func (s *Store) FileResults(ctx context.Context, runID int64) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, run_id, path, hash, status, error FROM file_results WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("file results: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	index := make(map[int64]int)
	for rows.Next() {
		var (
			f          FileRecord
			hash, ferr sql.NullString
			status     string
		)
		if err := rows.Scan(&f.ID, &f.RunID, &f.Path, &hash, &status, &ferr); err != nil {
			return nil, fmt.Errorf("scan file result: %w", err)
		}
		f.Hash, f.Status, f.Error = hash.String, Status(status), ferr.String
		index[f.ID] = len(files)
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.file_result_id, d.severity, d.code, d.message, d.help, d.url, d.line, d.col, d.labels
		 FROM diagnostics d JOIN file_results f ON f.id = d.file_result_id
		 WHERE f.run_id = ? ORDER BY d.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var (
			d         DiagnosticRecord
			fileID    int64
			sev       string
			help, url sql.NullString
			blob      []byte
		)
		if err := drows.Scan(&d.ID, &fileID, &sev, &d.Code, &d.Message, &help, &url, &d.Line, &d.Col, &blob); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Help, d.URL = help.String, url.String
		var ok bool
		if d.Severity, ok = diag.ParseSeverity(sev); !ok {
			return nil, fmt.Errorf("diagnostic %d: unknown severity %q", d.ID, sev)
		}
		if d.Labels, err = decodeLabels(blob); err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", d.ID, err)
		}
		i, ok := index[fileID]
		if !ok {
			continue
		}
		files[i].Diagnostics = append(files[i].Diagnostics, d)
	}
	return files, drows.Err()
}

// CodeCounts tallies the diagnostics of a run per code, most frequent first.
func (s *Store) CodeCounts(ctx context.Context, runID int64) ([]CodeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.code, COUNT(*) FROM diagnostics d
		 JOIN file_results f ON f.id = d.file_result_id
		 WHERE f.run_id = ?
		 GROUP BY d.code ORDER BY COUNT(*) DESC, d.code`, runID)
	if err != nil {
		return nil, fmt.Errorf("code counts: %w", err)
	}
	defer rows.Close()

	var out []CodeCount
	for rows.Next() {
		var c CodeCount
		if err := rows.Scan(&c.Code, &c.Count); err != nil {
			return nil, fmt.Errorf("scan code count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM runs ORDER BY id DESC LIMIT -1 OFFSET ?", keep)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("prune: scan: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("prune: begin: %w", err)
	}
	defer tx.Rollback()

	placeholders := placeholderList(len(ids))
	args := int64sToArgs(ids)
	queries := []string{
		"DELETE FROM diagnostics WHERE file_result_id IN (SELECT id FROM file_results WHERE run_id IN (" + placeholders + "))",
		"DELETE FROM file_results WHERE run_id IN (" + placeholders + ")",
		"DELETE FROM runs WHERE id IN (" + placeholders + ")",
	}
	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, fmt.Errorf("prune: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("prune: commit: %w", err)
	}
	return len(ids), nil
}
