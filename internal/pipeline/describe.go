package pipeline

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// #region summary
// Summary is the descriptive statistics of one numeric column.
type Summary struct {
	Column Column
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// #endregion summary

// #region describe
// Describe summarizes the given numeric columns of t. With no columns it
// summarizes the rounded effort columns.
func Describe(t Table, columns ...Column) ([]Summary, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("describe %s: empty table", t.Variant)
	}
	if len(columns) == 0 {
		columns = []Column{ColE1Rounded, ColE2Rounded}
	}

	out := make([]Summary, 0, len(columns))
	for _, c := range columns {
		vals := make([]float64, len(t.Rows))
		for i, r := range t.Rows {
			v, ok := r.Float(c)
			if !ok {
				return nil, fmt.Errorf("describe %s: column %q is not numeric", t.Variant, c)
			}
			vals[i] = v
		}
		slices.Sort(vals)

		out = append(out, Summary{
			Column: c,
			Count:  len(vals),
			Mean:   stat.Mean(vals, nil),
			Std:    stat.StdDev(vals, nil),
			Min:    floats.Min(vals),
			Q25:    quantile(0.25, vals),
			Q50:    quantile(0.5, vals),
			Q75:    quantile(0.75, vals),
			Max:    floats.Max(vals),
		})
	}
	return out, nil
}

// quantile interpolates linearly between closest ranks of sorted, the rule
// pandas describe() uses (Hyndman-Fan type 7).
func quantile(p float64, sorted []float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// #endregion describe
