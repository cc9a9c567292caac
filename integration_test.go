package gdlint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/gdlint/internal/config"
	"github.com/jward/gdlint/internal/rules"
	"github.com/jward/gdlint/internal/store"
)

// writeScript writes GDScript source under dir and returns the path.
func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// TestIntegration_ConfiguredProject runs the whole pipeline against the host
// filesystem: config file, discovery, checks, and recording the run.
func TestIntegration_ConfiguredProject(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, config.FileName, `
[lint]
exclude = ["addons", "generated"]

[rules]
disable = ["typed-function-signature"]
banned_calls = ["print", "prints"]
`)
	writeScript(t, dir, "player.gd", messySource)
	writeScript(t, dir, "ui/hud.gd", "extends Control\n\n\nfunc show_score(score) -> void:\n\tprints(score)\n")
	writeScript(t, dir, "generated/stub.gd", messySource)
	writeScript(t, dir, "addons/tool/plugin.gd", messySource)

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	checks, err := ChecksFor(cfg)
	require.NoError(t, err)

	l := New(WithConfig(cfg), WithChecks(checks...))
	started := time.Now()
	results, err := l.CheckDirectory(t.Context(), dir)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "player.gd"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "ui", "hud.gd"), results[1].Path)

	assert.Equal(t, []string{
		string(rules.CodeClassNameExtends),
		string(rules.CodeDeclarationOrder),
		string(rules.CodeDeclarationOrder),
		string(rules.CodeNoPrint),
	}, stringCodes(results[0]))
	assert.Equal(t, []string{string(rules.CodeNoPrint)}, stringCodes(results[1]))
	assert.Contains(t, results[1].Diagnostics[0].Message(), "prints")

	s, err := store.NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate())

	run, files := Record(dir, started, time.Now(), results)
	id, err := s.RecordRun(t.Context(), run, files)
	require.NoError(t, err)

	runs, err := s.Runs(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, 5, runs[0].Issues)

	stored, err := s.FileResults(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, results[0].File.Hash(), stored[0].Hash)
	require.Len(t, stored[0].Diagnostics, 4)
	assert.Equal(t, results[0].Diagnostics[0].Severity(), stored[0].Diagnostics[0].Severity)
	assert.Equal(t, results[0].Diagnostics[0].Labels(), stored[0].Diagnostics[0].Labels)
}

// TestIntegration_SingleFileRoot checks a root that names a file directly.
func TestIntegration_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "only.gd", "class_name Only\nextends Node\n")

	results, err := New().CheckDirectory(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
}

func stringCodes(r FileResult) []string {
	var out []string
	for _, d := range r.Diagnostics {
		out = append(out, string(d.Code()))
	}
	return out
}
