package gdlint

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jward/gdlint/internal/config"
	"github.com/jward/gdlint/internal/discover"
	"github.com/jward/gdlint/internal/logging"
	"github.com/jward/gdlint/internal/rules"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// Linter runs a fixed set of checks over GDScript files. It holds no
// per-file state and is safe for concurrent use.
type Linter struct {
	logger   *slog.Logger
	checks   []rules.Check
	fs       billy.Filesystem
	jobs     int
	discover discover.Options
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger for per-file events. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithChecks replaces the default check set.
func WithChecks(checks ...rules.Check) Option {
	return func(l *Linter) {
		l.checks = checks
	}
}

// WithJobs bounds how many files are checked at once. Zero or less means one
// per CPU; 1 checks files sequentially.
func WithJobs(jobs int) Option {
	return func(l *Linter) {
		l.jobs = jobs
	}
}

// WithFilesystem sets where files are discovered and read from. The default
// is the host filesystem.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(l *Linter) {
		l.fs = fsys
	}
}

// WithConfig applies the [lint] section of cfg. Rule selection is not
// applied here because an unknown code is an error the caller must report;
// use ChecksFor and WithChecks.
func WithConfig(cfg *config.Config) Option {
	return func(l *Linter) {
		l.jobs = cfg.Lint.Jobs
		l.discover.Extensions = cfg.Lint.Extensions
		l.discover.Exclude = cfg.Lint.Exclude
	}
}

// ChecksFor builds the check set selected by the [rules] section of cfg.
func ChecksFor(cfg *config.Config) ([]rules.Check, error) {
	checks, err := rules.Registry(rules.Options{
		Disable:     cfg.Rules.Disable,
		BannedCalls: cfg.Rules.BannedCalls,
	})
	if err != nil {
		return nil, fmt.Errorf("gdlint: %w", err)
	}
	return checks, nil
}

// New creates a Linter. Without options it runs every check with defaults
// against the host filesystem.
func New(opts ...Option) *Linter {
	def := config.Default()
	l := &Linter{
		logger: logging.Discard(),
		checks: rules.Default(),
		fs:     discover.OS(),
		discover: discover.Options{
			Extensions: def.Lint.Extensions,
			Exclude:    def.Lint.Exclude,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Checks returns the checks the Linter runs, in order.
func (l *Linter) Checks() []rules.Check {
	return l.checks
}

// CheckSource checks one in-memory file. Problems with the file itself are
// reported through FileResult.Err; checks then do not run.
func (l *Linter) CheckSource(ctx context.Context, path string, src []byte) FileResult {
	start := time.Now()
	res := l.checkSource(ctx, path, src)
	res.Duration = time.Since(start)

	if res.Err != nil {
		l.logger.Error("skipping file", "path", path, "err", res.Err)
	} else {
		l.logger.Debug("checked file",
			"path", path,
			"diagnostics", len(res.Diagnostics),
			"duration", res.Duration,
		)
	}
	return res
}

func (l *Linter) checkSource(ctx context.Context, path string, src []byte) FileResult {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if !utf8.Valid(src) {
		res.Err = ErrInvalidUTF8
		return res
	}

	res.File = source.NewFile(path, src)
	tree, err := syntax.Parse(ctx, src)
	if err != nil {
		res.Err = err
		return res
	}
	defer tree.Close()

	if bad := tree.FirstError(); bad != nil {
		pos := res.File.Position(bad.StartByte())
		res.Err = fmt.Errorf("%w at line %d, column %d", ErrParse, pos.Line, pos.Col)
		return res
	}

	res.Diagnostics = rules.Run(l.checks, tree.Root(), res.File)
	return res
}

// CheckFile reads path from the Linter's filesystem and checks it.
func (l *Linter) CheckFile(ctx context.Context, path string) FileResult {
	src, err := util.ReadFile(l.fs, path)
	if err != nil {
		res := FileResult{Path: path, Err: fmt.Errorf("read: %w", err)}
		l.logger.Error("skipping file", "path", path, "err", res.Err)
		return res
	}
	return l.CheckSource(ctx, path, src)
}

// CheckDirectory discovers the source files under root and checks them.
// A root naming a single file checks just that file.
func (l *Linter) CheckDirectory(ctx context.Context, root string) ([]FileResult, error) {
	return l.CheckPaths(ctx, []string{root})
}

// CheckPaths discovers source files under every root, dropping duplicates,
// and checks them in discovery order.
func (l *Linter) CheckPaths(ctx context.Context, roots []string) ([]FileResult, error) {
	paths, err := discover.All(l.fs, roots, l.discover)
	if err != nil {
		return nil, fmt.Errorf("gdlint: %w", err)
	}
	l.logger.Info("discovered files", "roots", roots, "files", len(paths))
	return l.CheckFiles(ctx, paths)
}
