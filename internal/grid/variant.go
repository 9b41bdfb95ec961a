package grid

import (
	"fmt"
	"math"
)

// DefaultBudget is the number of investment units split between the pair.
const DefaultBudget = 9

// Variant names of the two reference datasets.
const (
	VariantSlider = "slider"
	VariantCES075 = "ces075"
)

// #region variant
// Variant is a complete parameter set for one pipeline invocation.
type Variant struct {
	Name         string
	Capabilities []CapabilityPair
	Endowments   []EndowmentPair
	Labels       []ScenarioLabel
	Thetas       []int
}

// #endregion variant

// #region defaults
// DefaultCapabilities returns the three reference pairs ordered by
// descending a_high.
func DefaultCapabilities() []CapabilityPair {
	return []CapabilityPair{
		{AHigh: 6, ALow: 1, Gap: GapLarge},
		{AHigh: 5, ALow: 2, Gap: GapMedium},
		{AHigh: 4, ALow: 3, Gap: GapSmall},
	}
}

// Endowments sweeps x_high from 0 to budget with x_low = budget - x_high.
func Endowments(budget int) []EndowmentPair {
	if budget < 0 {
		return nil
	}
	out := make([]EndowmentPair, 0, budget+1)
	for x := 0; x <= budget; x++ {
		out = append(out, EndowmentPair{XHigh: x, XLow: budget - x})
	}
	return out
}

// DefaultThetas returns the two curvature values of every reference dataset.
func DefaultThetas() []int {
	return []int{1, 2}
}

// SliderLabels is the six-sigma mapping of the first dataset. The source
// listed "CES-4" for sigma -2 as well; it is labelled CES-2 here.
func SliderLabels() []ScenarioLabel {
	return []ScenarioLabel{
		{Sigma: 1, Label: "ADD"},
		{Sigma: 0.5, Label: "CES05"},
		{Sigma: 0, Label: "CD"},
		{Sigma: -2, Label: "CES-2"},
		{Sigma: -3, Label: "CES-3"},
		{Sigma: -4, Label: "CES-4"},
	}
}

// CES075Labels is the five-sigma mapping of the "CES 0.75" dataset.
func CES075Labels() []ScenarioLabel {
	return []ScenarioLabel{
		{Sigma: 1, Label: "ADD"},
		{Sigma: 0, Label: "CD"},
		{Sigma: -2, Label: "CES-2"},
		{Sigma: -3, Label: "CES-3"},
		{Sigma: -4, Label: "CES-4"},
	}
}

// SliderVariant returns the 360-row reference parameter set.
func SliderVariant() Variant {
	return Variant{
		Name:         VariantSlider,
		Capabilities: DefaultCapabilities(),
		Endowments:   Endowments(DefaultBudget),
		Labels:       SliderLabels(),
		Thetas:       DefaultThetas(),
	}
}

// CES075Variant returns the 300-row reference parameter set.
func CES075Variant() Variant {
	return Variant{
		Name:         VariantCES075,
		Capabilities: DefaultCapabilities(),
		Endowments:   Endowments(DefaultBudget),
		Labels:       CES075Labels(),
		Thetas:       DefaultThetas(),
	}
}

// DefaultVariants returns both reference datasets in run order.
func DefaultVariants() []Variant {
	return []Variant{SliderVariant(), CES075Variant()}
}

// #endregion defaults

// #region validate
// Validate rejects parameter sets that would produce an ambiguous or empty
// grid. The label mapping must be one-to-one in both directions.
func (v Variant) Validate() error {
	bad := func(field, format string, args ...any) error {
		return &ConfigurationError{Variant: v.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if len(v.Capabilities) == 0 {
		return bad("capabilities", "no capability pairs")
	}
	gaps := make(map[GapLabel]bool, len(v.Capabilities))
	for _, c := range v.Capabilities {
		if c.Gap == "" {
			return bad("capabilities", "pair (%g,%g) has no gap label", c.AHigh, c.ALow)
		}
		if gaps[c.Gap] {
			return bad("capabilities", "duplicate gap label %q", c.Gap)
		}
		if !isFinite(c.AHigh) || !isFinite(c.ALow) {
			return bad("capabilities", "pair %q has a non-finite ability", c.Gap)
		}
		gaps[c.Gap] = true
	}

	if len(v.Endowments) == 0 {
		return bad("endowments", "no endowment pairs")
	}
	seenX := make(map[int]bool, len(v.Endowments))
	for _, e := range v.Endowments {
		if seenX[e.XHigh] {
			return bad("endowments", "duplicate x_high %d", e.XHigh)
		}
		seenX[e.XHigh] = true
	}

	if len(v.Labels) == 0 {
		return bad("scenarios", "no sigma values")
	}
	sigmas := make(map[float64]string, len(v.Labels))
	labels := make(map[string]float64, len(v.Labels))
	for _, l := range v.Labels {
		if !isFinite(l.Sigma) {
			return bad("scenarios", "non-finite sigma")
		}
		if l.Label == "" {
			return bad("scenarios", "sigma %g has no label", l.Sigma)
		}
		if prev, ok := sigmas[l.Sigma]; ok {
			return bad("scenarios", "sigma %g mapped twice (%q, %q)", l.Sigma, prev, l.Label)
		}
		if prev, ok := labels[l.Label]; ok {
			return bad("scenarios", "label %q used for sigma %g and %g", l.Label, prev, l.Sigma)
		}
		sigmas[l.Sigma] = l.Label
		labels[l.Label] = l.Sigma
	}

	if len(v.Thetas) == 0 {
		return bad("thetas", "no theta values")
	}
	seenT := make(map[int]bool, len(v.Thetas))
	for _, t := range v.Thetas {
		if t < 1 {
			return bad("thetas", "theta %d is not a positive integer", t)
		}
		if seenT[t] {
			return bad("thetas", "duplicate theta %d", t)
		}
		seenT[t] = true
	}
	return nil
}

// #endregion validate

// #region scenarios
// Scenarios expands the label mapping over the theta values, sigma outer and
// theta inner.
func (v Variant) Scenarios() []Scenario {
	out := make([]Scenario, 0, len(v.Labels)*len(v.Thetas))
	for _, l := range v.Labels {
		for _, t := range v.Thetas {
			out = append(out, Scenario{Sigma: l.Sigma, Theta: t, Label: l.Label})
		}
	}
	return out
}

// Size is the number of cells Build produces for v.
func (v Variant) Size() int {
	return len(v.Capabilities) * len(v.Endowments) * len(v.Labels) * len(v.Thetas)
}

// #endregion scenarios

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
