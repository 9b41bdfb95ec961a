package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/replay"
)

// #region fixture-export-cmd
func newFixtureExportCmd(a *app) *cobra.Command {
	var (
		runID   string
		variant string
		every   int
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "fixture-export",
		Short: "Write a replay fixture from a stored run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" || (runID == "" && variant == "") {
				return usageErr("usage: slider fixture-export --out path/to/fixture.json (--run id | --variant name) [--every N]")
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if runID == "" {
				rec, err := st.LatestRun(variant)
				if err != nil {
					return err
				}
				runID = rec.RunID
			}
			run, err := st.GetRun(runID)
			if err != nil {
				return err
			}

			desc := fmt.Sprintf("run %s (%s, γ=%g), every %d row(s)", run.RunID, run.Variant, run.Config.Gamma, max(every, 1))
			f := replay.ExportFixture(run.Table, desc, every)
			if err := f.Save(outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(f.Expected), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "stored run to export")
	cmd.Flags().StringVar(&variant, "variant", "", "export the latest run of this variant")
	cmd.Flags().IntVar(&every, "every", 1, "export every Nth row")
	cmd.Flags().StringVar(&outPath, "out", "", "output fixture JSON path")
	return cmd
}

// #endregion fixture-export-cmd
