package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edwinlock/resource-allocation-tool/internal/eval"
	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/logging"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
	"github.com/edwinlock/resource-allocation-tool/internal/report"
	"github.com/edwinlock/resource-allocation-tool/internal/store"
)

// #region run-cmd
type runOptions struct {
	variants []string
	gamma    float64
	outDir   string
	csv      bool
	plots    bool
	store    bool
	print    bool
}

func newRunCmd(a *app) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Derive one or more variant tables and write them to the sinks",
		Long: `Builds the grid of each variant, derives every row, validates the table and
writes it out. The describe() summary of e1_rounded and e2_rounded is always
printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("csv") {
				o.csv = a.cfg.Output.CSV
			}
			if !cmd.Flags().Changed("plots") {
				o.plots = a.cfg.Output.Plots
			}
			if o.outDir == "" {
				o.outDir = a.cfg.Output.Dir
			}
			if len(o.variants) == 0 {
				o.variants = a.cfg.VariantNames()
			}
			ctx, cancel := signalContext()
			defer cancel()
			return a.run(ctx, cmd, o)
		},
	}
	cmd.Flags().StringSliceVar(&o.variants, "variant", nil, "variants to run (default: every configured variant)")
	cmd.Flags().Float64Var(&o.gamma, "gamma", 0, "override gamma for this run")
	cmd.Flags().StringVar(&o.outDir, "out", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&o.csv, "csv", false, "write <out>/<variant>.csv")
	cmd.Flags().BoolVar(&o.plots, "plots", false, "render <out>/<variant>/<scenario>_theta<theta>.png")
	cmd.Flags().BoolVar(&o.store, "store", false, "save the table to the run database")
	cmd.Flags().BoolVar(&o.print, "print", false, "print every group as a terminal table")
	return cmd
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, o runOptions) error {
	pcfg := a.cfg.PipelineConfig()
	if cmd.Flags().Changed("gamma") {
		pcfg.Gamma = o.gamma
	}

	var st *store.Store
	if o.store {
		s, err := a.openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	p := pipeline.New(pcfg, a.logger)
	out := cmd.OutOrStdout()
	for _, name := range o.variants {
		v, err := a.cfg.Variant(name)
		if err != nil {
			return err
		}

		table, err := p.Run(ctx, v)
		if err != nil {
			a.event(st, "", name, logging.EventRunFailed, err.Error())
			return fmt.Errorf("run %s: %w", name, err)
		}

		res := checkTable(table, v)
		if !res.Passed {
			a.event(st, "", name, logging.EventCheckFailed, res.Reason)
			return mismatchErr("check %s: %s", name, res.Reason)
		}

		var runID string
		if st != nil {
			rec, err := st.SaveRun(table)
			if err != nil {
				return err
			}
			runID = rec.RunID
			a.event(st, runID, name, logging.EventRunCompleted, fmt.Sprintf("%d rows", rec.RowCount))
			fmt.Fprintf(out, "stored %s as %s\n", name, runID)
		}

		if o.csv {
			sink := report.CSVSink{Dir: o.outDir}
			if err := sink.Write(ctx, table); err != nil {
				return err
			}
			a.event(st, runID, name, logging.EventCSVExported, sink.Path(name))
			fmt.Fprintf(out, "wrote %s\n", sink.Path(name))
		}
		if o.plots {
			dir := filepath.Join(o.outDir, name)
			if err := (report.PlotSink{Dir: dir, Log: a.logger}).Write(ctx, table); err != nil {
				return err
			}
			a.event(st, runID, name, logging.EventPlotsRendered, dir)
			fmt.Fprintf(out, "rendered %d plots to %s\n", len(report.Groups(table)), dir)
		}

		sums, err := pipeline.Describe(table)
		if err != nil {
			return err
		}
		fmt.Fprint(out, report.RenderSummaries(fmt.Sprintf("%s (γ=%g)", name, pcfg.Gamma), sums))
		if o.print {
			fmt.Fprint(out, report.RenderTable(table))
		}
	}
	return nil
}

// event records a run event when a store is open. Failures are logged and
// never abort the command.
func (a *app) event(st *store.Store, runID, variant, kind, detail string) {
	if st == nil {
		return
	}
	err := st.LogEvent(logging.EventEntry{RunID: runID, Variant: variant, Event: kind, Detail: detail})
	if err != nil {
		a.logger.Warn("log event", zap.String("event", kind), zap.Error(err))
	}
}

func checkTable(t pipeline.Table, v grid.Variant) eval.EvalResult {
	cfg := eval.DefaultEvalConfig()
	cfg.ExpectedRows = v.Size()
	return eval.NewEvalHarness(cfg).Run(t)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// #endregion run-cmd
