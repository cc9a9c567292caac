package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/config"
	"github.com/jward/gdlint/internal/logging"
)

// errReported is returned by commands that have already told the user what
// went wrong, so run() only sets the exit status.
var errReported = errors.New("issues reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config  string
	format  string
	color   string
	jobs    int
	store   string
	verbose int
	quiet   bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "gdlint",
		Short:         "Style checker for GDScript",
		Long:          "gdlint checks GDScript files against the Godot style guide: code order, class header order, typed signatures, and banned calls.",
		Version:       gdlint.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "config file (default: "+config.FileName+" in the working directory)")
	pf.StringVar(&g.format, "format", "", "output format: pretty|json")
	pf.StringVar(&g.color, "color", "", "colorize output: auto|always|never")
	pf.IntVarP(&g.jobs, "jobs", "j", 0, "files checked in parallel (0 means one per CPU)")
	pf.StringVar(&g.store, "store", "", "record runs in this sqlite database")
	pf.CountVarP(&g.verbose, "verbose", "v", "log more (-v info, -vv debug)")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "log nothing")

	root.AddCommand(
		newCheckCmd(g),
		newRulesCmd(g),
		newInitCmd(),
		newTreeCmd(),
		newHistoryCmd(g),
	)
	return root
}

// loadConfig reads the config file and applies flags the user set
// explicitly on top of it.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(".", g.config)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = g.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = g.color
	}
	if flags.Changed("jobs") {
		cfg.Lint.Jobs = g.jobs
	}
	if flags.Changed("store") {
		cfg.Store.Path = g.store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *globalFlags) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := logging.LevelFromVerbosity(g.verbose, g.quiet, cfg.LogLevel())
	if cfg.Output.Format == "json" {
		return logging.NewJSON(cmd.ErrOrStderr(), level)
	}
	return logging.New(cmd.ErrOrStderr(), level)
}
