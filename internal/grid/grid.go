package grid

import (
	"slices"
	"strings"
)

// #region build
// Build validates v and returns its full cross product: capability pairs
// outer, endowment pairs middle, scenarios inner, then stably sorted by
// sigma ascending and gap label.
func Build(v Variant) ([]Cell, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	type capEnd struct {
		c CapabilityPair
		e EndowmentPair
	}
	pre := make([]capEnd, 0, len(v.Capabilities)*len(v.Endowments))
	for _, c := range v.Capabilities {
		for _, e := range v.Endowments {
			pre = append(pre, capEnd{c, e})
		}
	}

	scenarios := v.Scenarios()
	cells := make([]Cell, 0, v.Size())
	for _, ce := range pre {
		for _, s := range scenarios {
			cells = append(cells, Cell{Capability: ce.c, Endowment: ce.e, Scenario: s})
		}
	}

	Sort(cells)
	return cells, nil
}

// #endregion build

// #region ordering
// Compare orders cells by sigma ascending, then gap label lexically.
// Cells equal under Compare keep their generation order when sorted with Sort.
func Compare(a, b Cell) int {
	switch {
	case a.Scenario.Sigma < b.Scenario.Sigma:
		return -1
	case a.Scenario.Sigma > b.Scenario.Sigma:
		return 1
	}
	return strings.Compare(string(a.Capability.Gap), string(b.Capability.Gap))
}

// Sort applies the table order in place. It is stable.
func Sort(cells []Cell) {
	slices.SortStableFunc(cells, Compare)
}

// #endregion ordering
