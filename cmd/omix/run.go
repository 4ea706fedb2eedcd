package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sghaida/omix/manifest"
)

var runCmd = &cobra.Command{
	Use:   "run <manifest.yaml>",
	Short: "Build the composition and invoke its operations",
	Long: `Loads the manifest, builds an instance (validating chains, self-types and
field requirements), invokes each operation listed under "invoke", and prints
one "op = value" line per operation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		return runRun(cmd.OutOrStdout(), args[0], logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(out io.Writer, path string, logger *zap.Logger) error {
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}

	comp, err := doc.Composition()
	if err != nil {
		return err
	}

	inst, err := comp.WithLogger(logger).Build()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	ops := doc.InvokeOps()
	if len(ops) == 0 {
		// No invoke list: run everything, in a stable order.
		ops = inst.Operations()
		sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	}

	for _, op := range ops {
		value, err := inst.Invoke(op)
		if err != nil {
			return fmt.Errorf("invoke %s: %w", op, err)
		}
		fmt.Fprintf(out, "%s = %v\n", op, value)
	}
	return nil
}
