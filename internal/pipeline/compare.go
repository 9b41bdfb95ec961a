package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
)

// compareAbsTol is the absolute tolerance added to every relative comparison.
const compareAbsTol = 1e-8

// #region comparison
// Mismatch is one derived value that differs between two tables.
type Mismatch struct {
	Index  int
	Key    grid.Key
	Column Column
	A      float64
	B      float64
}

// Comparison is the outcome of comparing two tables over the same grid.
type Comparison struct {
	Rows       int
	Mismatches []Mismatch
}

// Equal reports whether no derived value differed.
func (c Comparison) Equal() bool {
	return len(c.Mismatches) == 0
}

// MismatchedRows counts rows with at least one differing column.
func (c Comparison) MismatchedRows() int {
	seen := make(map[int]bool)
	for _, m := range c.Mismatches {
		seen[m.Index] = true
	}
	return len(seen)
}

// ByColumn counts mismatches per derived column.
func (c Comparison) ByColumn() map[Column]int {
	out := make(map[Column]int)
	for _, m := range c.Mismatches {
		out[m.Column]++
	}
	return out
}

// #endregion comparison

// #region compare
// Compare checks the derived columns of a and b row by row. Values are
// equal when |a-b| <= 1e-8 or |a-b| <= rtol*max(|a|, |b|). The tables must
// cover the same grid in the same order.
func Compare(a, b Table, rtol float64) (Comparison, error) {
	if len(a.Rows) != len(b.Rows) {
		return Comparison{}, fmt.Errorf("compare: row count %d != %d", len(a.Rows), len(b.Rows))
	}

	cmp := Comparison{Rows: len(a.Rows)}
	for i := range a.Rows {
		ra, rb := a.Rows[i], b.Rows[i]
		if ra.Key() != rb.Key() {
			return Comparison{}, fmt.Errorf("compare: row %d keys differ: %+v vs %+v", i, ra.Key(), rb.Key())
		}
		for _, c := range DerivedColumns {
			va, _ := ra.Float(c)
			vb, _ := rb.Float(c)
			if !scalar.EqualWithinAbsOrRel(va, vb, compareAbsTol, rtol) {
				cmp.Mismatches = append(cmp.Mismatches, Mismatch{Index: i, Key: ra.Key(), Column: c, A: va, B: vb})
			}
		}
	}
	return cmp, nil
}

// #endregion compare
