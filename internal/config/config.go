// Package config loads the slider project configuration from YAML.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// Environment overrides.
const (
	EnvConfig = "SLIDER_CONFIG"
	EnvDB     = "SLIDER_DB"
	EnvOut    = "SLIDER_OUT"
)

const defaultConfigYAML = `# slider exercise configuration
version: 1

# Weight on ability in the production function.
gamma: 0.5
# Sessions the high type earns at the reference investment.
sessions: 15
# Investment units split between the pair; also the alpha reference point.
budget: 9
# Parallel row workers, 0 uses every CPU.
workers: 0

capabilities:
  - {high: 6, low: 1, gap: large}
  - {high: 5, low: 2, gap: medium}
  - {high: 4, low: 3, gap: small}

variants:
  - name: slider
    thetas: [1, 2]
    scenarios:
      - {sigma: 1, label: ADD}
      - {sigma: 0.5, label: CES05}
      - {sigma: 0, label: CD}
      - {sigma: -2, label: CES-2}
      - {sigma: -3, label: CES-3}
      - {sigma: -4, label: CES-4}
  - name: ces075
    thetas: [1, 2]
    scenarios:
      - {sigma: 1, label: ADD}
      - {sigma: 0, label: CD}
      - {sigma: -2, label: CES-2}
      - {sigma: -3, label: CES-3}
      - {sigma: -4, label: CES-4}

output:
  dir: out
  csv: true
  plots: false
  db: slider.db

log:
  mode: development
`

// #region types
// Config is the full project configuration.
type Config struct {
	Version      int                   `yaml:"version"`
	Gamma        float64               `yaml:"gamma"`
	Sessions     float64               `yaml:"sessions"`
	Budget       int                   `yaml:"budget"`
	Workers      int                   `yaml:"workers"`
	Capabilities []grid.CapabilityPair `yaml:"capabilities"`
	Variants     []VariantConfig       `yaml:"variants"`
	Output       OutputConfig          `yaml:"output"`
	Log          LogConfig             `yaml:"log"`
}

// VariantConfig declares one named scenario set.
type VariantConfig struct {
	Name      string               `yaml:"name"`
	Thetas    []int                `yaml:"thetas"`
	Scenarios []grid.ScenarioLabel `yaml:"scenarios"`
}

// OutputConfig controls where run artifacts go.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	CSV   bool   `yaml:"csv"`
	Plots bool   `yaml:"plots"`
	DB    string `yaml:"db"`
}

// LogConfig selects the logger flavour.
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// #endregion types

// #region load
// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the defaults. An empty path falls back to
// $SLIDER_CONFIG, and to the defaults alone when that is unset too.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	path = envOr(EnvConfig, path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Output.DB = envOr(EnvDB, cfg.Output.DB)
	cfg.Output.Dir = envOr(EnvOut, cfg.Output.Dir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the effective configuration.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// #endregion load

// #region validate
// Validate checks the scalar settings and resolves every variant.
func (c Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("config: unsupported version %d", c.Version)
	}
	if math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) {
		return fmt.Errorf("config: gamma must be finite")
	}
	if !(c.Sessions > 0) || math.IsInf(c.Sessions, 0) {
		return fmt.Errorf("config: sessions must be positive, got %v", c.Sessions)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("config: no variants")
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if seen[v.Name] {
			return fmt.Errorf("config: duplicate variant %q", v.Name)
		}
		seen[v.Name] = true
		if _, err := c.Variant(v.Name); err != nil {
			return err
		}
	}
	return nil
}

// #endregion validate

// #region resolve
// VariantNames lists the configured variants in file order.
func (c Config) VariantNames() []string {
	names := make([]string, len(c.Variants))
	for i, v := range c.Variants {
		names[i] = v.Name
	}
	return names
}

// Variant resolves a named variant into a validated grid.Variant.
func (c Config) Variant(name string) (grid.Variant, error) {
	for _, vc := range c.Variants {
		if vc.Name != name {
			continue
		}
		v := grid.Variant{
			Name:         vc.Name,
			Capabilities: c.Capabilities,
			Endowments:   grid.Endowments(c.Budget),
			Labels:       vc.Scenarios,
			Thetas:       vc.Thetas,
		}
		if err := v.Validate(); err != nil {
			return grid.Variant{}, fmt.Errorf("config: %w", err)
		}
		return v, nil
	}
	return grid.Variant{}, fmt.Errorf("config: unknown variant %q", name)
}

// PipelineConfig returns the run parameters shared by every variant.
func (c Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Gamma:      c.Gamma,
		Sessions:   c.Sessions,
		ReferenceX: float64(c.Budget),
		Workers:    c.Workers,
	}
}

// #endregion resolve

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
