package report

import (
	"slices"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region groups
// Panel holds the rows of one capability gap within a group, ordered by
// x_high.
type Panel struct {
	Gap  grid.GapLabel
	Rows []pipeline.Row
}

// Group is every row of one (scenario, theta) combination, split by gap.
type Group struct {
	Scenario string
	Sigma    float64
	Theta    int
	Panels   []Panel
}

type groupKey struct {
	scenario string
	theta    int
}

// Groups partitions a table by (scenario, theta) in first-appearance order.
// Panels within a group also follow first appearance.
func Groups(t pipeline.Table) []Group {
	var groups []Group
	index := make(map[groupKey]int)

	for _, r := range t.Rows {
		k := groupKey{scenario: r.Scenario.Label, theta: r.Scenario.Theta}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, Group{Scenario: k.scenario, Sigma: r.Scenario.Sigma, Theta: k.theta})
		}
		g := &groups[gi]

		pi := slices.IndexFunc(g.Panels, func(p Panel) bool { return p.Gap == r.Capability.Gap })
		if pi < 0 {
			pi = len(g.Panels)
			g.Panels = append(g.Panels, Panel{Gap: r.Capability.Gap})
		}
		g.Panels[pi].Rows = append(g.Panels[pi].Rows, r)
	}

	for gi := range groups {
		for pi := range groups[gi].Panels {
			slices.SortStableFunc(groups[gi].Panels[pi].Rows, func(a, b pipeline.Row) int {
				return a.Endowment.XHigh - b.Endowment.XHigh
			})
		}
	}
	return groups
}

// #endregion groups
