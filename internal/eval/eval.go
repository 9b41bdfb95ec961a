package eval

import (
	"fmt"
	"math"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region eval-harness
// EvalHarness checks the invariants every finalized table must satisfy.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates t and returns pass/fail with one metric per check.
func (h *EvalHarness) Run(t pipeline.Table) EvalResult {
	var metrics []EvalMetric
	var failReasons []string

	record := func(name string, value float64, pass bool, reason string) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, reason)
		}
	}

	// 1. Row count
	if h.config.ExpectedRows > 0 {
		n := len(t.Rows)
		record("row_count", float64(n), n == h.config.ExpectedRows,
			fmt.Sprintf("row count %d, expected %d", n, h.config.ExpectedRows))
	}

	// 2. Unique (a_gap, x_high, sigma, theta) keys
	seen := make(map[grid.Key]bool, len(t.Rows))
	dupes := 0
	for _, r := range t.Rows {
		if seen[r.Key()] {
			dupes++
		}
		seen[r.Key()] = true
	}
	record("unique_keys", float64(dupes), dupes == 0, fmt.Sprintf("%d duplicate row keys", dupes))

	// 3. e_tot is the sum of the rounded efforts
	badTot := 0
	for _, r := range t.Rows {
		if r.ETot != r.E1Rounded+r.E2Rounded {
			badTot++
		}
	}
	record("e_tot_identity", float64(badTot), badTot == 0, fmt.Sprintf("%d rows with e_tot != e1 + e2", badTot))

	// 4. Finite derived values
	nonFinite := 0
	for _, r := range t.Rows {
		for _, v := range []float64{r.Alpha, r.HHigh, r.HLow, r.EHigh, r.ELow} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				nonFinite++
			}
		}
	}
	record("finite_values", float64(nonFinite), nonFinite == 0, fmt.Sprintf("%d non-finite values", nonFinite))

	// 5. Reference calibration: the high type at the reference investment
	// is priced at exactly the session count.
	miscal := 0
	for _, r := range t.Rows {
		if float64(r.Endowment.XHigh) != t.Config.ReferenceX || r.HHigh <= 0 {
			continue
		}
		if math.Abs(r.EHigh-t.Config.Sessions) > h.config.CalibrationTol {
			miscal++
		}
	}
	record("reference_calibration", float64(miscal), miscal == 0,
		fmt.Sprintf("%d reference rows not priced at %g sessions", miscal, t.Config.Sessions))

	// 6. Table order
	if h.config.RequireSortedOrder {
		outOfOrder := 0
		for i := 1; i < len(t.Rows); i++ {
			if grid.Compare(t.Rows[i-1].Cell, t.Rows[i].Cell) > 0 {
				outOfOrder++
			}
		}
		record("sorted_order", float64(outOfOrder), outOfOrder == 0, fmt.Sprintf("%d rows out of order", outOfOrder))
	}

	passed := len(failReasons) == 0
	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness
