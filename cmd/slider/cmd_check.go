package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/eval"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region check-cmd
func newCheckCmd(a *app) *cobra.Command {
	var variants []string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Derive variant tables and verify their invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(variants) == 0 {
				variants = a.cfg.VariantNames()
			}
			ctx, cancel := signalContext()
			defer cancel()

			p := pipeline.New(a.cfg.PipelineConfig(), a.logger)
			failed := 0
			for _, name := range variants {
				v, err := a.cfg.Variant(name)
				if err != nil {
					return err
				}
				table, err := p.Run(ctx, v)
				if err != nil {
					return fmt.Errorf("run %s: %w", name, err)
				}
				res := checkTable(table, v)
				printEval(cmd.OutOrStdout(), name, res)
				if !res.Passed {
					failed++
				}
			}
			if failed > 0 {
				return mismatchErr("%d of %d variants failed", failed, len(variants))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "variants to check (default: every configured variant)")
	return cmd
}

func printEval(w io.Writer, variant string, res eval.EvalResult) {
	fmt.Fprintf(w, "%s\n", variant)
	fmt.Fprintf(w, "%-22s| %10s| %s\n", "Check", "Value", "Pass")
	fmt.Fprintf(w, "%-22s+%11s+%s\n", "----------------------", "-----------", "------")
	for _, m := range res.Metrics {
		pass := "OK"
		if !m.Pass {
			pass = "FAIL"
		}
		fmt.Fprintf(w, "%-22s| %10g| %s\n", m.Name, m.Value, pass)
	}
	if res.Passed {
		fmt.Fprintf(w, "\nResult: pass\n\n")
	} else {
		fmt.Fprintf(w, "\nResult: fail (%s)\n\n", res.Reason)
	}
}

// #endregion check-cmd
