package replay

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// Replay actions.
const (
	ActionMatch   = "match"
	ActionDiverge = "diverge"
	ActionMissing = "missing"
)

// #region types
// ReplayResult is the outcome of checking one expected row.
type ReplayResult struct {
	Key      grid.Key
	Action   string
	Expected FixtureExpectedRow
	Got      *pipeline.Row // nil when the key is not in the table
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	Total    int
	Matches  int
	Diverged int
	Missing  int
}

// #endregion types

// #region replay
// Replay compares the expected rows against a computed table.
func Replay(t pipeline.Table, expected []FixtureExpectedRow) []ReplayResult {
	index := make(map[grid.Key]int, len(t.Rows))
	for i, r := range t.Rows {
		index[r.Key()] = i
	}

	results := make([]ReplayResult, 0, len(expected))
	for _, exp := range expected {
		i, ok := index[exp.Key()]
		if !ok {
			results = append(results, ReplayResult{Key: exp.Key(), Action: ActionMissing, Expected: exp})
			continue
		}
		row := t.Rows[i]
		action := ActionMatch
		if row.E1Rounded != exp.E1Rounded || row.E2Rounded != exp.E2Rounded || row.ETot != exp.ETot {
			action = ActionDiverge
		}
		results = append(results, ReplayResult{Key: exp.Key(), Action: action, Expected: exp, Got: &row})
	}
	return results
}

// Run computes the fixture's variant with its config overrides and replays
// the expected rows against it.
func Run(ctx context.Context, f *Fixture, v grid.Variant, base pipeline.Config, log *zap.Logger) ([]ReplayResult, error) {
	if v.Name != f.Variant {
		return nil, fmt.Errorf("replay: fixture variant %q, got %q", f.Variant, v.Name)
	}
	table, err := pipeline.New(f.Config.ToConfig(base), log).Run(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return Replay(table, f.Expected), nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{Total: len(results)}
	for _, r := range results {
		switch r.Action {
		case ActionMatch:
			s.Matches++
		case ActionDiverge:
			s.Diverged++
		case ActionMissing:
			s.Missing++
		}
	}
	return s
}

// #endregion replay
