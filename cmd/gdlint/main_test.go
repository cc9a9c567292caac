package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/config"
)

const messyScript = "extends Node\nclass_name Player\n\nvar hp = 3\nsignal died\n\n\nfunc hit(amount):\n\tprint(amount)\n"

// project creates a temporary project with the given files and makes it the
// working directory for the rest of the test.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func gdlintRun(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck_Clean(t *testing.T) {
	project(t, map[string]string{"ok.gd": "class_name Ok\nextends Node\n"})

	code, out, errOut := gdlintRun("check")
	assert.Equal(t, 0, code)
	assert.Equal(t, "checked 1 file, no issues found\n", out)
	assert.Empty(t, errOut)
}

func TestCheck_IssuesExitNonZero(t *testing.T) {
	project(t, map[string]string{
		"player.gd":           messyScript,
		"addons/lib/other.gd": messyScript,
	})

	code, out, errOut := gdlintRun("check")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "player.gd:2:1: warning[class-name-extends]: class_name should precede extends")
	assert.Contains(t, out, "warning[no-print]")
	assert.Contains(t, out, "found 5 issues in 1 file (1 file checked)")
	assert.NotContains(t, out, "addons")
	assert.NotContains(t, errOut, "Error:")
}

func TestCheck_ExplicitPaths(t *testing.T) {
	project(t, map[string]string{
		"a/one.gd": "class_name One\nextends Node\n",
		"b/two.gd": messyScript,
	})

	code, out, _ := gdlintRun("check", "a")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "checked 1 file")
}

func TestCheck_JSON(t *testing.T) {
	project(t, map[string]string{"player.gd": messyScript, "bad.gd": "func (:\n"})

	code, out, _ := gdlintRun("check", "--format", "json")
	assert.Equal(t, 1, code)

	var report struct {
		Files []struct {
			Path        string            `json:"path"`
			Error       string            `json:"error"`
			Diagnostics []json.RawMessage `json:"diagnostics"`
		} `json:"files"`
		Summary gdlint.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	assert.Equal(t, "bad.gd", report.Files[0].Path)
	assert.Contains(t, report.Files[0].Error, "syntax error")
	assert.Len(t, report.Files[1].Diagnostics, 5)
	assert.Equal(t, gdlint.Summary{Files: 2, FilesWithIssues: 1, Failed: 1, Issues: 5}, report.Summary)
}

func TestCheck_ConfigDisablesRules(t *testing.T) {
	project(t, map[string]string{
		config.FileName: "[rules]\ndisable = [\"no-print\", \"typed-function-signature\", \"declaration-order\"]\n",
		"player.gd":     messyScript,
	})

	code, out, _ := gdlintRun("check")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "found 1 issue in 1 file")
	assert.Contains(t, out, "class-name-extends")
}

func TestCheck_UnknownDisabledCode(t *testing.T) {
	project(t, map[string]string{
		config.FileName: "[rules]\ndisable = [\"nope\"]\n",
		"player.gd":     messyScript,
	})

	code, out, errOut := gdlintRun("check")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `Error: gdlint: rules: unknown diagnostic code "nope"`)
}

func TestCheck_InvalidFormatFlag(t *testing.T) {
	project(t, map[string]string{"ok.gd": "var a: int = 1\n"})

	code, _, errOut := gdlintRun("check", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: config:")
}

func TestCheck_VerboseLogsToStderr(t *testing.T) {
	project(t, map[string]string{"ok.gd": "var a: int = 1\n"})

	code, _, errOut := gdlintRun("check", "-vv")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, `msg="checked file" path=ok.gd`)
}

func TestStoreAndHistory(t *testing.T) {
	dir := project(t, map[string]string{"player.gd": messyScript})

	code, _, _ := gdlintRun("check", "--store", "reports/runs.db")
	assert.Equal(t, 1, code)
	code, _, _ = gdlintRun("check", "--store", "reports/runs.db")
	assert.Equal(t, 1, code)

	code, out, errOut := gdlintRun("history", "--store", "reports/runs.db")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ISSUES")
	assert.Regexp(t, `(?m)^2\s`, out)
	assert.Regexp(t, `(?m)^1\s`, out)
	assert.Contains(t, out, filepath.Base(dir))

	code, out, _ = gdlintRun("history", "--store", "reports/runs.db", "--run", "1")
	assert.Equal(t, 0, code)
	assert.Regexp(t, `declaration-order\s+2`, out)
	assert.Regexp(t, `class-name-extends\s+1`, out)

	code, out, _ = gdlintRun("history", "--store", "reports/runs.db", "--run", "1", "--files")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "LOCATION")
	assert.Regexp(t, `player\.gd:2:1\s+warning\s+class-name-extends\s+class_name should precede extends\s+with this`, out)
	assert.Regexp(t, `player\.gd:9:2\s+warning\s+no-print`, out)

	code, out, _ = gdlintRun("history", "--store", "reports/runs.db", "--keep", "1")
	assert.Equal(t, 0, code)
	assert.Regexp(t, `(?m)^2\s`, out)
	assert.NotRegexp(t, `(?m)^1\s`, out)
}

func TestStore_RootIsWorkingDirectory(t *testing.T) {
	dir := project(t, map[string]string{
		"a/one.gd": "class_name One\nextends Node\n",
		"b/two.gd": "class_name Two\nextends Node\n",
	})

	code, _, _ := gdlintRun("check", "a", "b", "--store", "runs.db")
	require.Equal(t, 0, code)

	s, err := openStore("runs.db")
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, filepath.Base(dir), filepath.Base(runs[0].Root))
	assert.True(t, filepath.IsAbs(runs[0].Root))
}

func TestHistory_RequiresStore(t *testing.T) {
	project(t, nil)

	code, _, errOut := gdlintRun("history")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no report store configured")
}

func TestCheck_JSONFormatLogsJSON(t *testing.T) {
	project(t, map[string]string{"ok.gd": "var a: int = 1\n"})

	code, _, errOut := gdlintRun("check", "--format", "json", "-vv")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, `"msg":"checked file"`)
	assert.Contains(t, errOut, `"path":"ok.gd"`)
}

func TestRules(t *testing.T) {
	project(t, map[string]string{config.FileName: "[rules]\ndisable = [\"no-print\"]\n"})

	code, out, _ := gdlintRun("rules")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "CODE")
	assert.Regexp(t, `class-name-extends\s+class-name-extends\s+yes`, out)
	assert.Regexp(t, `unknown-order\s+declaration-order\s+yes`, out)
	assert.Regexp(t, `no-print\s+no-print\s+no\s+calls to print are discouraged`, out)
}

func TestRules_Verify(t *testing.T) {
	project(t, nil)

	code, out, _ := gdlintRun("rules", "--verify")
	assert.Equal(t, 0, code)
	assert.Regexp(t, `class-name-extends\s+ok`, out)
	assert.NotContains(t, out, "error")
}

func TestInit(t *testing.T) {
	dir := project(t, nil)

	code, out, _ := gdlintRun("init")
	require.Equal(t, 0, code)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.FileName), cfg.Source)
	assert.Equal(t, config.Default().Rules.BannedCalls, cfg.Rules.BannedCalls)

	code, _, errOut := gdlintRun("init")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = gdlintRun("init", "--force")
	assert.Equal(t, 0, code)
}

func TestTree(t *testing.T) {
	project(t, map[string]string{"a.gd": "extends Node\n"})

	code, out, _ := gdlintRun("tree", "a.gd", "--max-depth", "1")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "source [0]")
	assert.Contains(t, out, `  extends_statement [1] 1:1-1:13 "extends Node"`)
}

func TestTree_SyntaxError(t *testing.T) {
	project(t, map[string]string{"bad.gd": "func (:\n"})

	code, out, errOut := gdlintRun("tree", "bad.gd")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "source [0]")
	assert.Contains(t, errOut, "syntax error at line 1")
}

func TestVersion(t *testing.T) {
	code, out, _ := gdlintRun("--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, gdlint.Version)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", &buf))
	assert.False(t, useColor("auto", &buf))
}
