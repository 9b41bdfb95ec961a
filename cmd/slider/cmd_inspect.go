package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/logging"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
	"github.com/edwinlock/resource-allocation-tool/internal/report"
	"github.com/edwinlock/resource-allocation-tool/internal/store"
)

// #region inspect-cmd
func newInspectCmd(a *app) *cobra.Command {
	var (
		last    int
		runID   string
		jsonOut bool
		events  bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List stored runs, run events, or one run in detail",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			switch {
			case runID != "":
				return runDetailMode(out, st, runID, jsonOut)
			case events:
				return runEventsMode(out, st, last, jsonOut)
			default:
				return runListMode(out, st, last, jsonOut)
			}
		},
	}
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent entries")
	cmd.Flags().StringVar(&runID, "run", "", "show single run detail")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON instead of table")
	cmd.Flags().BoolVar(&events, "events", false, "list run events instead of runs")
	return cmd
}

// #endregion inspect-cmd

// #region list-mode
type listRow struct {
	RunID     string  `json:"run_id"`
	Variant   string  `json:"variant"`
	Gamma     float64 `json:"gamma"`
	Sessions  float64 `json:"sessions"`
	RowCount  int     `json:"row_count"`
	CreatedAt string  `json:"created_at"`
}

func toListRow(rec store.RunRecord) listRow {
	return listRow{
		RunID:     rec.RunID,
		Variant:   rec.Variant,
		Gamma:     rec.Config.Gamma,
		Sessions:  rec.Config.Sessions,
		RowCount:  rec.RowCount,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func runListMode(w io.Writer, st *store.Store, last int, jsonOut bool) error {
	records, err := st.ListRuns(last)
	if err != nil {
		return err
	}
	rows := make([]listRow, len(records))
	for i, rec := range records {
		rows[i] = toListRow(rec)
	}
	if jsonOut {
		return printJSON(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "no runs found")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-8s  %7s  %8s  %5s  %s\n", "Run", "Variant", "Gamma", "Sessions", "Rows", "Time")
	fmt.Fprintf(w, "%-36s+-%-8s+-%7s+-%8s+-%5s+-%s\n",
		"------------------------------------", "--------", "-------", "--------", "-----", "--------------------")
	for _, r := range rows {
		fmt.Fprintf(w, "%-36s  %-8s  %7g  %8g  %5d  %s\n", r.RunID, r.Variant, r.Gamma, r.Sessions, r.RowCount, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region events-mode
func runEventsMode(w io.Writer, st *store.Store, last int, jsonOut bool) error {
	entries, err := logging.ListEvents(st.DB(), last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no events found")
		return nil
	}
	fmt.Fprintf(w, "%5s  %-8s  %-15s  %-36s  %s\n", "ID", "Variant", "Event", "Run", "Detail")
	for _, e := range entries {
		runID := e.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%5d  %-8s  %-15s  %-36s  %s\n", e.ID, e.Variant, e.Event, runID, e.Detail)
	}
	return nil
}

// #endregion events-mode

// #region detail-mode
type detailOutput struct {
	listRow
	ReferenceX float64            `json:"reference_x"`
	Summary    []pipeline.Summary `json:"summary"`
}

func runDetailMode(w io.Writer, st *store.Store, runID string, jsonOut bool) error {
	run, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	sums, err := pipeline.Describe(run.Table)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(w, detailOutput{
			listRow:    toListRow(run.RunRecord),
			ReferenceX: run.Config.ReferenceX,
			Summary:    sums,
		})
	}

	fmt.Fprintf(w, "Run:         %s\n", run.RunID)
	fmt.Fprintf(w, "Variant:     %s\n", run.Variant)
	fmt.Fprintf(w, "Gamma:       %g\n", run.Config.Gamma)
	fmt.Fprintf(w, "Sessions:    %g\n", run.Config.Sessions)
	fmt.Fprintf(w, "Reference x: %g\n", run.Config.ReferenceX)
	fmt.Fprintf(w, "Rows:        %d\n", run.RowCount)
	fmt.Fprintf(w, "Created:     %s\n\n", run.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Fprint(w, report.RenderSummaries(run.Variant, sums))
	return nil
}

// #endregion detail-mode

// #region helpers
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
