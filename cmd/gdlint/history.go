package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var (
		limit int
		runID int64
		keep  int
		files bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show runs recorded in the report store",
		Long:  "Lists recent runs recorded with --store (or store.path in the config). With --run, shows how often each diagnostic code occurred in that run, or with --files every diagnostic it recorded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return errors.New("no report store configured (use --store or store.path)")
			}

			s, err := openStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := cmd.Context()

			if keep > 0 {
				n, err := s.Prune(ctx, keep)
				if err != nil {
					return err
				}
				g.logger(cmd, cfg).Info("pruned runs", "removed", n, "kept", keep)
			}

			if runID > 0 && files {
				results, err := s.FileResults(ctx, runID)
				if err != nil {
					return err
				}
				formatFileResultsText(cmd.OutOrStdout(), results)
				return nil
			}
			if runID > 0 {
				counts, err := s.CodeCounts(ctx, runID)
				if err != nil {
					return err
				}
				formatCodeCountsText(cmd.OutOrStdout(), counts)
				return nil
			}

			runs, err := s.Runs(ctx, limit)
			if err != nil {
				return err
			}
			formatRunsText(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list (0: all)")
	cmd.Flags().Int64Var(&runID, "run", 0, "show diagnostic code counts for this run")
	cmd.Flags().BoolVar(&files, "files", false, "with --run, list each diagnostic and failed file")
	cmd.Flags().IntVar(&keep, "keep", 0, "delete all but the most recent N runs first")
	return cmd
}
