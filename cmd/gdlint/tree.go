package main

import (
	"fmt"

	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/jward/gdlint/internal/discover"
	"github.com/jward/gdlint/internal/syntax"
)

func newTreeCmd() *cobra.Command {
	opts := syntax.DumpOptions{}
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a GDScript file",
		Long:  "Prints one line per syntax node with its depth, position, and truncated text. Useful when writing or debugging checks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := util.ReadFile(discover.OS(), args[0])
			if err != nil {
				return err
			}
			tree, err := syntax.Parse(cmd.Context(), src)
			if err != nil {
				return err
			}
			defer tree.Close()

			if err := syntax.Dump(cmd.OutOrStdout(), tree.Root(), src, opts); err != nil {
				return err
			}
			if bad := tree.FirstError(); bad != nil {
				p := bad.StartPoint()
				return fmt.Errorf("%s: syntax error at line %d, column %d", args[0], p.Row+1, p.Column+1)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", -1, "stop descending below this depth (negative: no limit)")
	cmd.Flags().IntVar(&opts.Width, "width", 40, "truncate node text to this many columns (0: no text)")
	cmd.Flags().BoolVar(&opts.Anonymous, "all", false, "include anonymous nodes such as keywords and punctuation")
	return cmd
}
