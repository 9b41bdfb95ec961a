package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string               `json:"description"`
	Variant     string               `json:"variant"`
	Config      FixtureConfig        `json:"config"`
	Expected    []FixtureExpectedRow `json:"expected"`
}

// FixtureConfig overrides run parameters. Absent fields keep the defaults;
// an explicit zero is an override.
type FixtureConfig struct {
	Gamma      *float64 `json:"gamma,omitempty"`
	Sessions   *float64 `json:"sessions,omitempty"`
	ReferenceX *float64 `json:"reference_x,omitempty"`
}

// FixtureExpectedRow pins the rounded efforts of one grid cell.
type FixtureExpectedRow struct {
	Gap       string  `json:"a_gap"`
	XHigh     int     `json:"x_high"`
	Sigma     float64 `json:"sigma"`
	Theta     int     `json:"theta"`
	E1Rounded int     `json:"e1_rounded"`
	E2Rounded int     `json:"e2_rounded"`
	ETot      int     `json:"e_tot"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Variant == "" {
		return nil, fmt.Errorf("parse fixture %s: missing variant", path)
	}
	return &f, nil
}

// ToConfig applies the fixture overrides to base.
func (fc FixtureConfig) ToConfig(base pipeline.Config) pipeline.Config {
	if fc.Gamma != nil {
		base.Gamma = *fc.Gamma
	}
	if fc.Sessions != nil {
		base.Sessions = *fc.Sessions
	}
	if fc.ReferenceX != nil {
		base.ReferenceX = *fc.ReferenceX
	}
	return base
}

// Key returns the grid key the expected row refers to.
func (r FixtureExpectedRow) Key() grid.Key {
	return grid.Key{Gap: grid.GapLabel(r.Gap), XHigh: r.XHigh, Sigma: r.Sigma, Theta: r.Theta}
}

// #endregion fixture-loader

// #region fixture-export

// ExportFixture pins every nth row of t (every row when every <= 1) along
// with the run parameters that produced it.
func ExportFixture(t pipeline.Table, description string, every int) *Fixture {
	if every < 1 {
		every = 1
	}
	f := &Fixture{
		Description: description,
		Variant:     t.Variant,
		Config: FixtureConfig{
			Gamma:      ptr(t.Config.Gamma),
			Sessions:   ptr(t.Config.Sessions),
			ReferenceX: ptr(t.Config.ReferenceX),
		},
	}
	for i := 0; i < len(t.Rows); i += every {
		r := t.Rows[i]
		f.Expected = append(f.Expected, FixtureExpectedRow{
			Gap:       string(r.Capability.Gap),
			XHigh:     r.Endowment.XHigh,
			Sigma:     r.Scenario.Sigma,
			Theta:     r.Scenario.Theta,
			E1Rounded: r.E1Rounded,
			E2Rounded: r.E2Rounded,
			ETot:      r.ETot,
		})
	}
	return f
}

// Save writes the fixture as indented JSON.
func (f *Fixture) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

func ptr(v float64) *float64 {
	return &v
}

// #endregion fixture-export
