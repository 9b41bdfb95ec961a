package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
	"github.com/edwinlock/resource-allocation-tool/internal/report"
)

// #region compare-cmd
func newCompareCmd(a *app) *cobra.Command {
	var (
		variant        string
		gammaA, gammaB float64
		rtol           float64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare one variant derived under two gamma values",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Variant(variant)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			base := a.cfg.PipelineConfig()
			tables := make([]pipeline.Table, 2)
			out := cmd.OutOrStdout()
			for i, g := range []float64{gammaA, gammaB} {
				cfg := base
				cfg.Gamma = g
				t, err := pipeline.New(cfg, a.logger).Run(ctx, v)
				if err != nil {
					return fmt.Errorf("run %s γ=%g: %w", variant, g, err)
				}
				sums, err := pipeline.Describe(t)
				if err != nil {
					return err
				}
				fmt.Fprint(out, report.RenderSummaries(fmt.Sprintf("%s (γ=%g)", variant, g), sums))
				tables[i] = t
			}

			cmp, err := pipeline.Compare(tables[0], tables[1], rtol)
			if err != nil {
				return err
			}
			if cmp.Equal() {
				fmt.Fprintf(out, "tables match within rtol=%g (%d rows)\n", rtol, cmp.Rows)
				return nil
			}
			fmt.Fprintf(out, "%d of %d rows differ (rtol=%g)\n", cmp.MismatchedRows(), cmp.Rows, rtol)
			byCol := cmp.ByColumn()
			cols := make([]pipeline.Column, 0, len(byCol))
			for c := range byCol {
				cols = append(cols, c)
			}
			slices.SortFunc(cols, func(x, y pipeline.Column) int {
				return slices.Index(pipeline.Columns, x) - slices.Index(pipeline.Columns, y)
			})
			for _, c := range cols {
				fmt.Fprintf(out, "  %-12s %d\n", c, byCol[c])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", grid.VariantSlider, "variant to compare")
	cmd.Flags().Float64Var(&gammaA, "gamma-a", 0.5, "gamma of the first run")
	cmd.Flags().Float64Var(&gammaB, "gamma-b", 0.4375, "gamma of the second run")
	cmd.Flags().Float64Var(&rtol, "rtol", 1e-5, "relative tolerance")
	return cmd
}

// #endregion compare-cmd
