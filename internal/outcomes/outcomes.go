package outcomes

import (
	"fmt"
	"math"

	"github.com/edwinlock/resource-allocation-tool/internal/effort"
	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

// #region pre-earnings
// PreEarnings maps two ability scores to the abilities entering H. The gap
// decides between a large (6,1) and medium (5,2) split and its sign decides
// which child gets the higher value.
func PreEarnings(score1, score2, threshold float64) (float64, float64) {
	gap := score1 - score2
	switch {
	case gap > threshold:
		return 6, 1
	case gap >= 0:
		return 5, 2
	case gap >= -threshold:
		return 2, 5
	default:
		return 1, 6
	}
}

// #endregion pre-earnings

// #region compute
// Compute evaluates every split of the budget for a session. Alpha is
// calibrated at the higher pre-earnings value with the whole budget.
func Compute(s Session, sc Scenario, cfg Config) (Outcome, error) {
	if cfg.Budget < 0 {
		return Outcome{}, fmt.Errorf("compute outcomes: negative budget %d", cfg.Budget)
	}
	pre1, pre2 := PreEarnings(s.AbilityScore1, s.AbilityScore2, cfg.GapThreshold)

	alpha, err := effort.ComputeAlpha(math.Max(pre1, pre2), float64(cfg.Budget), sc.Sigma, sc.Theta, sc.Gamma, cfg.MaxSessions)
	if err != nil {
		return Outcome{}, fmt.Errorf("compute alpha: %w", err)
	}

	out := Outcome{
		PreEarnings1: pre1,
		PreEarnings2: pre2,
		Alpha:        alpha,
		Splits:       make([]Split, 0, cfg.Budget+1),
	}
	for i := 0; i <= cfg.Budget; i++ {
		inv1, inv2 := i, cfg.Budget-i
		h1, err := production.H(pre1, float64(inv1), sc.Sigma, sc.Gamma)
		if err != nil {
			return Outcome{}, fmt.Errorf("split %d/%d: %w", inv1, inv2, err)
		}
		h2, err := production.H(pre2, float64(inv2), sc.Sigma, sc.Gamma)
		if err != nil {
			return Outcome{}, fmt.Errorf("split %d/%d: %w", inv1, inv2, err)
		}

		e1 := effort.CalculateE(h1, alpha, sc.Theta)
		e2 := effort.CalculateE(h2, alpha, sc.Theta)
		r1, r2 := effort.Round(e1), effort.Round(e2)
		split := Split{
			Investment1:    inv1,
			Investment2:    inv2,
			Earnings1:      e1,
			Earnings2:      e2,
			Aggregate:      e1 + e2,
			Earnings1Round: r1,
			Earnings2Round: r2,
			AggregateRound: r1 + r2,
		}
		out.Splits = append(out.Splits, split)

		if i == 0 || split.Aggregate > out.MaximumEarnings {
			out.MaximumEarnings = split.Aggregate
		}
		if i == 0 || split.AggregateRound > out.MaximumEarningsRound {
			out.MaximumEarningsRound = split.AggregateRound
		}
	}
	return out, nil
}

// BestSplits returns the splits whose rounded aggregate equals the maximum.
func (o Outcome) BestSplits() []Split {
	var best []Split
	for _, s := range o.Splits {
		if s.AggregateRound == o.MaximumEarningsRound {
			best = append(best, s)
		}
	}
	return best
}

// #endregion compute
