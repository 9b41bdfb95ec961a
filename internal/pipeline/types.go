package pipeline

import (
	"fmt"
	"strconv"

	"github.com/edwinlock/resource-allocation-tool/internal/effort"
	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

// #region config
// Config holds the parameters shared by every row of a run.
type Config struct {
	Gamma      float64 // weight on ability in H
	Sessions   float64 // sessions alpha calibrates against
	ReferenceX float64 // investment at which alpha is calibrated
	Workers    int     // parallel row workers; <= 0 means GOMAXPROCS
}

// DefaultConfig returns the reference run parameters.
func DefaultConfig() Config {
	return Config{
		Gamma:      production.DefaultGamma,
		Sessions:   effort.DefaultSessions,
		ReferenceX: grid.DefaultBudget,
	}
}

// #endregion config

// #region columns
// Column names one field of the exported table.
type Column string

const (
	ColAHigh     Column = "a_high"
	ColALow      Column = "a_low"
	ColAGap      Column = "a_gap"
	ColXHigh     Column = "x_high"
	ColXLow      Column = "x_low"
	ColSigma     Column = "sigma"
	ColTheta     Column = "theta"
	ColScenario  Column = "scenario"
	ColAlpha     Column = "alpha"
	ColHHigh     Column = "h_high"
	ColHLow      Column = "h_low"
	ColEHigh     Column = "e_high"
	ColELow      Column = "e_low"
	ColE1Rounded Column = "e1_rounded"
	ColE2Rounded Column = "e2_rounded"
	ColETot      Column = "e_tot"
)

// Columns is the exported column order.
var Columns = []Column{
	ColAHigh, ColALow, ColAGap, ColXHigh, ColXLow, ColSigma, ColTheta, ColScenario,
	ColAlpha, ColHHigh, ColHLow, ColEHigh, ColELow, ColE1Rounded, ColE2Rounded, ColETot,
}

// DerivedColumns are the numeric columns computed by the pipeline.
var DerivedColumns = []Column{
	ColAlpha, ColHHigh, ColHLow, ColEHigh, ColELow, ColE1Rounded, ColE2Rounded, ColETot,
}

// Header returns Columns as strings.
func Header() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = string(c)
	}
	return out
}

// #endregion columns

// #region row
// Row is one grid cell with its derived values. Rows are never modified
// after Derive returns them.
type Row struct {
	grid.Cell

	Alpha float64
	HHigh float64
	HLow  float64
	EHigh float64
	ELow  float64

	E1Rounded int
	E2Rounded int
	ETot      int
}

// Float returns a numeric column of the row. ok is false for the label
// columns a_gap and scenario.
func (r Row) Float(c Column) (v float64, ok bool) {
	switch c {
	case ColAHigh:
		return r.Capability.AHigh, true
	case ColALow:
		return r.Capability.ALow, true
	case ColXHigh:
		return float64(r.Endowment.XHigh), true
	case ColXLow:
		return float64(r.Endowment.XLow), true
	case ColSigma:
		return r.Scenario.Sigma, true
	case ColTheta:
		return float64(r.Scenario.Theta), true
	case ColAlpha:
		return r.Alpha, true
	case ColHHigh:
		return r.HHigh, true
	case ColHLow:
		return r.HLow, true
	case ColEHigh:
		return r.EHigh, true
	case ColELow:
		return r.ELow, true
	case ColE1Rounded:
		return float64(r.E1Rounded), true
	case ColE2Rounded:
		return float64(r.E2Rounded), true
	case ColETot:
		return float64(r.ETot), true
	}
	return 0, false
}

// Record formats the row in Columns order.
func (r Row) Record() []string {
	return []string{
		formatFloat(r.Capability.AHigh),
		formatFloat(r.Capability.ALow),
		string(r.Capability.Gap),
		strconv.Itoa(r.Endowment.XHigh),
		strconv.Itoa(r.Endowment.XLow),
		formatFloat(r.Scenario.Sigma),
		strconv.Itoa(r.Scenario.Theta),
		r.Scenario.Label,
		formatFloat(r.Alpha),
		formatFloat(r.HHigh),
		formatFloat(r.HLow),
		formatFloat(r.EHigh),
		formatFloat(r.ELow),
		strconv.Itoa(r.E1Rounded),
		strconv.Itoa(r.E2Rounded),
		strconv.Itoa(r.ETot),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// #endregion row

// #region table
// Table is the finalized output of one run, in grid order.
type Table struct {
	Variant string
	Config  Config
	Rows    []Row
}

// Records returns every row formatted in Columns order.
func (t Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Record()
	}
	return out
}

// #endregion table

// #region row-error
// RowError reports the cell whose derivation failed and at which step.
type RowError struct {
	Index int
	Cell  grid.Cell
	Stage string // "alpha" | "h_high" | "h_low" | "e_high" | "e_low"
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d [%s]: %s: %v", e.Index, e.Cell, e.Stage, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// #endregion row-error
