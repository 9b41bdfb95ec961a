package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edwinlock/resource-allocation-tool/internal/outcomes"
)

// #region outcomes-cmd
func newOutcomesCmd(a *app) *cobra.Command {
	var (
		score1, score2 float64
		scenarios      []string
	)
	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "Show the earnings of every budget split for one session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []outcomes.Scenario
			if len(scenarios) == 0 {
				selected = outcomes.DefaultScenarios()
			}
			for _, name := range scenarios {
				sc, ok := outcomes.ScenarioByName(name)
				if !ok {
					return usageErr("unknown scenario %q (want A-H)", name)
				}
				selected = append(selected, sc)
			}

			cfg := outcomes.DefaultConfig()
			cfg.Budget = a.cfg.Budget
			cfg.MaxSessions = a.cfg.Sessions

			session := outcomes.Session{AbilityScore1: score1, AbilityScore2: score2}
			for _, sc := range selected {
				o, err := outcomes.Compute(session, sc, cfg)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", sc.Name, err)
				}
				printOutcome(cmd.OutOrStdout(), sc, o)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&score1, "score1", 0, "ability score of child 1 (0-100)")
	cmd.Flags().Float64Var(&score2, "score2", 0, "ability score of child 2 (0-100)")
	cmd.Flags().StringSliceVar(&scenarios, "scenario", nil, "scenarios to show (default: A-H)")
	return cmd
}

func printOutcome(w io.Writer, sc outcomes.Scenario, o outcomes.Outcome) {
	fmt.Fprintf(w, "Scenario %s (%s)  pre-earnings %g/%g  alpha %.4f\n",
		sc.Name, sc.Description, o.PreEarnings1, o.PreEarnings2, o.Alpha)
	fmt.Fprintf(w, "%5s %5s  %8s %8s %8s  %4s %4s %5s\n", "inv1", "inv2", "e1", "e2", "total", "r1", "r2", "rtot")
	for _, s := range o.Splits {
		mark := ""
		if s.AggregateRound == o.MaximumEarningsRound {
			mark = " *"
		}
		fmt.Fprintf(w, "%5d %5d  %8.3f %8.3f %8.3f  %4d %4d %5d%s\n",
			s.Investment1, s.Investment2, s.Earnings1, s.Earnings2, s.Aggregate,
			s.Earnings1Round, s.Earnings2Round, s.AggregateRound, mark)
	}
	fmt.Fprintf(w, "max %.3f (rounded %d)\n\n", o.MaximumEarnings, o.MaximumEarningsRound)
}

// #endregion outcomes-cmd
