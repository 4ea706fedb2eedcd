package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sghaida/omix/manifest"
)

var chainsCmd = &cobra.Command{
	Use:   "chains <manifest.yaml>",
	Short: "Show the resolution chains without building an instance",
	Long: `Linearizes the composition and prints each operation's chain from the base
implementation to the most-specific override. Useful to check what a given
mix-in order resolves to before running it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		return runChains(cmd.OutOrStdout(), args[0], logger)
	},
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

func runChains(out io.Writer, path string, logger *zap.Logger) error {
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}

	comp, err := doc.Composition()
	if err != nil {
		return err
	}

	table, err := comp.WithLogger(logger).Linearize()
	if err != nil {
		return fmt.Errorf("linearize failed: %w", err)
	}

	ops := table.Operations()
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })

	for _, op := range ops {
		chain, _ := table.Chain(op)
		fmt.Fprintf(out, "%s: %s\n", op, strings.Join(chain.Traits(), " -> "))
	}
	return nil
}
