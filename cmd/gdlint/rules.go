package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/rules"
)

func newRulesCmd(g *globalFlags) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the checks and their diagnostic codes",
		Long:  "Lists every diagnostic code, the check that emits it, and whether the current configuration enables it. With --verify, compiles every query the checks use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				return runVerify(cmd)
			}
			return runRules(cmd, g)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "compile every query and report failures")
	return cmd
}

func runRules(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}
	enabled, err := gdlint.ChecksFor(cfg)
	if err != nil {
		return err
	}
	var on []diag.Code
	for _, c := range enabled {
		on = append(on, c.Codes...)
	}

	all, err := rules.Registry(rules.Options{BannedCalls: cfg.Rules.BannedCalls})
	if err != nil {
		return err
	}
	var rows []ruleRow
	for _, c := range all {
		for _, code := range c.Codes {
			rows = append(rows, ruleRow{
				Code:        string(code),
				Check:       c.Name,
				Enabled:     slices.Contains(on, code),
				Description: c.Description,
			})
		}
	}
	formatRulesText(cmd.OutOrStdout(), rows)
	return nil
}

func runVerify(cmd *cobra.Command) error {
	var rows []queryRow
	failed := 0
	for _, q := range rules.Queries() {
		row := queryRow{Name: q.Name()}
		if err := q.Compile(); err != nil {
			row.Err = err.Error()
			failed++
		}
		rows = append(rows, row)
	}
	formatQueriesText(cmd.OutOrStdout(), rows)
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed to compile", failed, len(rows))
	}
	return nil
}
