package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edwinlock/resource-allocation-tool/internal/effort"
	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

// #region pipeline
// Pipeline derives effort tables from parameter grids.
type Pipeline struct {
	config Config
	log    *zap.Logger
}

// New creates a pipeline. A nil logger discards output.
func New(config Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{config: config, log: log}
}

// Config returns the run parameters of the pipeline.
func (p *Pipeline) Config() Config {
	return p.config
}

// Run builds the grid for v and derives every row.
func (p *Pipeline) Run(ctx context.Context, v grid.Variant) (Table, error) {
	cells, err := grid.Build(v)
	if err != nil {
		return Table{}, fmt.Errorf("build grid: %w", err)
	}
	return p.RunCells(ctx, v.Name, cells)
}

// RunCells derives one row per cell. Rows are computed in parallel and then
// stably sorted into table order. If any row fails, no table is returned and
// the error of the lowest-index failing cell is reported.
func (p *Pipeline) RunCells(ctx context.Context, name string, cells []grid.Cell) (Table, error) {
	start := time.Now()
	workers := p.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := make([]Row, len(cells))
	errs := make([]error, len(cells))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cells {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := Derive(cells[i], p.config)
			if err != nil {
				var re *RowError
				if errors.As(err, &re) {
					re.Index = i
				}
				errs[i] = err
				return nil
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Table{}, fmt.Errorf("run %s: %w", name, err)
	}

	for _, err := range errs {
		if err != nil {
			p.log.Error("row derivation failed", zap.String("variant", name), zap.Error(err))
			return Table{}, fmt.Errorf("run %s: %w", name, err)
		}
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		return grid.Compare(a.Cell, b.Cell)
	})

	p.log.Info("table derived",
		zap.String("variant", name),
		zap.Int("rows", len(rows)),
		zap.Int("workers", workers),
		zap.Float64("gamma", p.config.Gamma),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Table{Variant: name, Config: p.config, Rows: rows}, nil
}

// #endregion pipeline

// #region derive
// Derive computes alpha, both H values, both efforts and the rounded totals
// for one cell. Alpha is calibrated at the high type's ability and the fixed
// reference investment, not the cell's own x_high.
func Derive(c grid.Cell, cfg Config) (Row, error) {
	sigma := c.Scenario.Sigma
	theta := c.Scenario.Theta
	fail := func(stage string, err error) (Row, error) {
		return Row{}, &RowError{Cell: c, Stage: stage, Err: err}
	}

	alpha, err := effort.ComputeAlpha(c.Capability.AHigh, cfg.ReferenceX, sigma, theta, cfg.Gamma, cfg.Sessions)
	if err != nil {
		return fail("alpha", err)
	}
	hHigh, err := production.H(c.Capability.AHigh, float64(c.Endowment.XHigh), sigma, cfg.Gamma)
	if err != nil {
		return fail("h_high", err)
	}
	hLow, err := production.H(c.Capability.ALow, float64(c.Endowment.XLow), sigma, cfg.Gamma)
	if err != nil {
		return fail("h_low", err)
	}

	eHigh := effort.CalculateE(hHigh, alpha, theta)
	if !finite(eHigh) {
		return fail("e_high", nonFinite(c.Capability.AHigh, float64(c.Endowment.XHigh), sigma, cfg.Gamma))
	}
	eLow := effort.CalculateE(hLow, alpha, theta)
	if !finite(eLow) {
		return fail("e_low", nonFinite(c.Capability.ALow, float64(c.Endowment.XLow), sigma, cfg.Gamma))
	}

	e1 := effort.Round(eHigh)
	e2 := effort.Round(eLow)
	return Row{
		Cell:      c,
		Alpha:     alpha,
		HHigh:     hHigh,
		HLow:      hLow,
		EHigh:     eHigh,
		ELow:      eLow,
		E1Rounded: e1,
		E2Rounded: e2,
		ETot:      e1 + e2,
	}, nil
}

// #endregion derive

// #region helpers
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func nonFinite(a, x, sigma, gamma float64) error {
	return &production.DomainError{A: a, X: x, Sigma: sigma, Gamma: gamma, Guard: production.GuardNonFinite}
}

// #endregion helpers
