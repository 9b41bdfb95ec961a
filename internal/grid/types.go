package grid

import "fmt"

// #region gap-label
// GapLabel names the capability gap between the two individuals of a pair.
type GapLabel string

const (
	GapLarge  GapLabel = "large"
	GapMedium GapLabel = "medium"
	GapSmall  GapLabel = "small"
)

// #endregion gap-label

// #region capability-pair
// CapabilityPair holds the ability endowments of the high and low type.
type CapabilityPair struct {
	AHigh float64  `json:"a_high" yaml:"high"`
	ALow  float64  `json:"a_low" yaml:"low"`
	Gap   GapLabel `json:"a_gap" yaml:"gap"`
}

// #endregion capability-pair

// #region endowment-pair
// EndowmentPair splits the investment budget between the high and low type.
type EndowmentPair struct {
	XHigh int `json:"x_high"`
	XLow  int `json:"x_low"`
}

// #endregion endowment-pair

// #region scenario
// ScenarioLabel is one entry of the enumerated sigma -> label mapping.
type ScenarioLabel struct {
	Sigma float64 `json:"sigma" yaml:"sigma"`
	Label string  `json:"label" yaml:"label"`
}

// Scenario is one (sigma, theta) combination with its display label.
type Scenario struct {
	Sigma float64 `json:"sigma"`
	Theta int     `json:"theta"`
	Label string  `json:"scenario"`
}

// #endregion scenario

// #region cell
// Cell is one point of the parameter grid before any derived values exist.
type Cell struct {
	Capability CapabilityPair
	Endowment  EndowmentPair
	Scenario   Scenario
}

// Key identifies a cell uniquely within one variant's grid.
type Key struct {
	Gap   GapLabel
	XHigh int
	Sigma float64
	Theta int
}

// Key returns the row key of the cell.
func (c Cell) Key() Key {
	return Key{Gap: c.Capability.Gap, XHigh: c.Endowment.XHigh, Sigma: c.Scenario.Sigma, Theta: c.Scenario.Theta}
}

func (c Cell) String() string {
	return fmt.Sprintf("capability=(%g,%g,%s) endowment=(%d,%d) scenario=(sigma=%g,theta=%d,%s)",
		c.Capability.AHigh, c.Capability.ALow, c.Capability.Gap,
		c.Endowment.XHigh, c.Endowment.XLow,
		c.Scenario.Sigma, c.Scenario.Theta, c.Scenario.Label)
}

// #endregion cell

// #region configuration-error
// ConfigurationError reports a parameter set that cannot form a valid grid.
type ConfigurationError struct {
	Variant string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("variant %q: invalid %s: %s", e.Variant, e.Field, e.Reason)
}

// #endregion configuration-error
