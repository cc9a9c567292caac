package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/config"
	"github.com/jward/gdlint/internal/render"
	"github.com/jward/gdlint/internal/store"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check GDScript files",
		Long:  "Checks every GDScript file under the given paths (default: the working directory). Exits with status 1 when any issue is found or a file cannot be checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, args)
		},
	}
}

func runCheck(cmd *cobra.Command, g *globalFlags, args []string) error {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := g.logger(cmd, cfg)
	if cfg.Source != "" {
		logger.Info("loaded config", "path", cfg.Source)
	}

	checks, err := gdlint.ChecksFor(cfg)
	if err != nil {
		return err
	}
	l := gdlint.New(
		gdlint.WithConfig(cfg),
		gdlint.WithChecks(checks...),
		gdlint.WithLogger(logger),
	)

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	ctx := cmd.Context()
	started := time.Now()
	results, err := l.CheckPaths(ctx, roots)
	if err != nil {
		return err
	}
	finished := time.Now()

	if cfg.Store.Path != "" {
		// Relative file paths in a run resolve against the working
		// directory, so that is the run's root.
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := recordRun(ctx, cfg.Store.Path, wd, started, finished, results); err != nil {
			return err
		}
		logger.Info("recorded run", "store", cfg.Store.Path)
	}

	if err := writeResults(cmd.OutOrStdout(), cfg, results); err != nil {
		return err
	}
	if !gdlint.Summarize(results).Clean() {
		return errReported
	}
	return nil
}

func writeResults(w io.Writer, cfg *config.Config, results []gdlint.FileResult) error {
	if cfg.Output.Format == "json" {
		return render.JSON(w, results)
	}
	base, _ := os.Getwd()
	return render.Pretty(w, results, render.Options{
		Color:   useColor(cfg.Output.Color, w),
		BaseDir: base,
	})
}

// useColor resolves a color mode. "auto" colors only a terminal and honours
// NO_COLOR.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func recordRun(ctx context.Context, path, root string, started, finished time.Time, results []gdlint.FileResult) error {
	s, err := openStore(path)
	if err != nil {
		return err
	}
	defer s.Close()

	run, files := gdlint.Record(root, started, finished, results)
	if _, err := s.RecordRun(ctx, run, files); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	s, err := store.NewStore(path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
