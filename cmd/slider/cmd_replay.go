package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/replay"
)

// #region replay-cmd
func newReplayCmd(a *app) *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Recompute a fixture's variant and compare its pinned rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturePath == "" {
				return usageErr("usage: slider replay --fixture path/to/fixture.json")
			}
			f, err := replay.LoadFixture(fixturePath)
			if err != nil {
				return usageErr("load fixture: %v", err)
			}
			v, err := a.cfg.Variant(f.Variant)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			results, err := replay.Run(ctx, f, v, a.cfg.PipelineConfig(), a.logger)
			if err != nil {
				return err
			}
			if diverge := printComparison(cmd.OutOrStdout(), results); diverge > 0 {
				return mismatchErr("%d of %d rows diverge", diverge, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to fixture JSON")
	return cmd
}

// printComparison outputs a comparison table and returns the number of
// rows that did not match.
func printComparison(w io.Writer, results []replay.ReplayResult) int {
	fmt.Fprintf(w, "%-28s| %-10s| %-10s| %s\n", "Cell", "Expected", "Replayed", "Match")
	fmt.Fprintf(w, "%-28s+%-11s+%-11s+%s\n",
		"----------------------------", "-----------", "-----------", "------")

	for _, r := range results {
		cell := fmt.Sprintf("%s x=%d σ=%g θ=%d", r.Key.Gap, r.Key.XHigh, r.Key.Sigma, r.Key.Theta)
		exp := fmt.Sprintf("%d/%d/%d", r.Expected.E1Rounded, r.Expected.E2Rounded, r.Expected.ETot)
		got := "-"
		if r.Got != nil {
			got = fmt.Sprintf("%d/%d/%d", r.Got.E1Rounded, r.Got.E2Rounded, r.Got.ETot)
		}
		match := "DIFF"
		switch r.Action {
		case replay.ActionMatch:
			match = "OK"
		case replay.ActionMissing:
			match = "MISSING"
		}
		fmt.Fprintf(w, "%-28s| %-10s| %-10s| %s\n", cell, exp, got, match)
	}

	s := replay.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d match, %d diverge, %d missing\n", s.Total, s.Matches, s.Diverged, s.Missing)
	return s.Diverged + s.Missing
}

// #endregion replay-cmd
