package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slider.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultMatchesReferenceVariants(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	for _, want := range grid.DefaultVariants() {
		got, err := cfg.Variant(want.Name)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("variant %s mismatch (-want +got):\n%s", want.Name, diff)
		}
	}
	assert.Equal(t, []string{grid.VariantSlider, grid.VariantCES075}, cfg.VariantNames())
	assert.Equal(t, pipeline.DefaultConfig(), cfg.PipelineConfig())
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvDB, "")
	t.Setenv(EnvOut, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesScalarsKeepsDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvDB, "")
	t.Setenv(EnvOut, "")

	path := writeConfig(t, "version: 1\ngamma: 0.4375\nworkers: 2\noutput:\n  dir: results\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.4375, cfg.Gamma)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, 15.0, cfg.Sessions)
	assert.Len(t, cfg.Variants, 2)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "version: 1\nbudget: 5\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDB, "/tmp/runs.db")
	t.Setenv(EnvOut, "/tmp/out")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Budget)
	assert.Equal(t, "/tmp/runs.db", cfg.Output.DB)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)

	v, err := cfg.Variant(grid.VariantSlider)
	require.NoError(t, err)
	assert.Equal(t, 3*6*6*2, v.Size())
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	t.Setenv(EnvConfig, "")
	tests := []struct {
		name string
		body string
		cfg  bool // expect a ConfigurationError in the chain
	}{
		{"bad version", "version: 2\n", false},
		{"zero sessions", "version: 1\nsessions: 0\n", false},
		{"negative budget", "version: 1\nbudget: -1\n", true},
		{"duplicate variant", "version: 1\nvariants:\n  - {name: a, thetas: [1], scenarios: [{sigma: 1, label: ADD}]}\n  - {name: a, thetas: [1], scenarios: [{sigma: 1, label: ADD}]}\n", false},
		{"duplicate sigma", "version: 1\nvariants:\n  - {name: a, thetas: [1], scenarios: [{sigma: 1, label: ADD}, {sigma: 1, label: X}]}\n", true},
		{"zero theta", "version: 1\nvariants:\n  - {name: a, thetas: [0], scenarios: [{sigma: 1, label: ADD}]}\n", true},
		{"malformed yaml", "version: [\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			var ce *grid.ConfigurationError
			assert.Equal(t, tt.cfg, errors.As(err, &ce), "err = %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUnknownVariant(t *testing.T) {
	_, err := Default().Variant("nope")
	assert.ErrorContains(t, err, "unknown variant")
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Setenv(EnvConfig, "")
	data, err := Default().Marshal()
	require.NoError(t, err)
	cfg, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, Default().Variants, cfg.Variants)
}
