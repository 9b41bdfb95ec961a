package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runVariant(t *testing.T, v grid.Variant, cfg Config) Table {
	t.Helper()
	table, err := New(cfg, nil).Run(context.Background(), v)
	require.NoError(t, err)
	return table
}

func findRow(t *testing.T, table Table, key grid.Key) Row {
	t.Helper()
	for _, r := range table.Rows {
		if r.Key() == key {
			return r
		}
	}
	t.Fatalf("row %+v not found", key)
	return Row{}
}

func TestWorkedAdditiveExample(t *testing.T) {
	table := runVariant(t, grid.SliderVariant(), DefaultConfig())

	r := findRow(t, table, grid.Key{Gap: grid.GapLarge, XHigh: 9, Sigma: 1, Theta: 1})
	assert.Equal(t, 6.0, r.Capability.AHigh)
	assert.Equal(t, 1.0, r.Capability.ALow)
	assert.Equal(t, 0, r.Endowment.XLow)
	assert.Equal(t, "ADD", r.Scenario.Label)
	assert.Equal(t, 2.0, r.Alpha)
	assert.Equal(t, 7.5, r.HHigh)
	assert.Equal(t, 0.5, r.HLow)
	assert.Equal(t, 15.0, r.EHigh)
	assert.Equal(t, 1.0, r.ELow)
	assert.Equal(t, 15, r.E1Rounded)
	assert.Equal(t, 1, r.E2Rounded)
	assert.Equal(t, 16, r.ETot)
}

func TestAlphaUsesReferenceInvestment(t *testing.T) {
	table := runVariant(t, grid.SliderVariant(), DefaultConfig())

	// Same capability and scenario, different x_high: alpha must not move.
	a := findRow(t, table, grid.Key{Gap: grid.GapMedium, XHigh: 0, Sigma: 0.5, Theta: 2})
	b := findRow(t, table, grid.Key{Gap: grid.GapMedium, XHigh: 7, Sigma: 0.5, Theta: 2})
	assert.Equal(t, a.Alpha, b.Alpha)
	assert.NotEqual(t, a.HHigh, b.HHigh)
}

func TestTableShapeAndIdentities(t *testing.T) {
	for _, v := range grid.DefaultVariants() {
		t.Run(v.Name, func(t *testing.T) {
			table := runVariant(t, v, DefaultConfig())
			require.Len(t, table.Rows, v.Size())
			assert.Equal(t, v.Name, table.Variant)

			seen := make(map[grid.Key]bool)
			for i, r := range table.Rows {
				require.False(t, seen[r.Key()], "duplicate key %+v", r.Key())
				seen[r.Key()] = true

				assert.Equal(t, r.E1Rounded+r.E2Rounded, r.ETot, "row %d", i)
				if r.Scenario.Sigma <= 0 && r.Endowment.XHigh == 0 {
					assert.Zero(t, r.HHigh, "row %d", i)
					assert.Zero(t, r.EHigh, "row %d", i)
				}
				// The high type at the full budget is priced at the session count.
				if r.Endowment.XHigh == grid.DefaultBudget {
					assert.Equal(t, 15, r.E1Rounded, "row %d", i)
				}
				if i > 0 {
					assert.LessOrEqual(t, grid.Compare(table.Rows[i-1].Cell, r.Cell), 0, "row %d out of order", i)
				}
			}
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	a := runVariant(t, grid.SliderVariant(), DefaultConfig())
	b := runVariant(t, grid.SliderVariant(), DefaultConfig())
	if diff := cmp.Diff(a.Records(), b.Records()); diff != "" {
		t.Fatalf("records differ between runs (-a +b):\n%s", diff)
	}
}

func TestWorkerCountDoesNotChangeOutput(t *testing.T) {
	serial := DefaultConfig()
	serial.Workers = 1
	parallel := DefaultConfig()
	parallel.Workers = 16

	a := runVariant(t, grid.CES075Variant(), serial)
	b := runVariant(t, grid.CES075Variant(), parallel)
	if diff := cmp.Diff(a.Rows, b.Rows); diff != "" {
		t.Fatalf("serial and parallel rows differ (-serial +parallel):\n%s", diff)
	}
}

func badVariant() grid.Variant {
	return grid.Variant{
		Name: "negative",
		Capabilities: []grid.CapabilityPair{
			{AHigh: 6, ALow: 1, Gap: grid.GapLarge},
			{AHigh: -1, ALow: 2, Gap: "broken"},
		},
		Endowments: grid.Endowments(grid.DefaultBudget),
		Labels:     []grid.ScenarioLabel{{Sigma: 1, Label: "ADD"}, {Sigma: 0.5, Label: "CES05"}},
		Thetas:     grid.DefaultThetas(),
	}
}

func TestDomainErrorAbortsRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 4

	table, err := New(cfg, nil).Run(context.Background(), badVariant())
	require.Error(t, err)
	assert.Empty(t, table.Rows)

	var re *RowError
	require.True(t, errors.As(err, &re), "expected RowError, got %v", err)
	assert.Equal(t, "alpha", re.Stage)
	assert.Equal(t, grid.GapLabel("broken"), re.Cell.Capability.Gap)
	assert.Equal(t, 0.5, re.Cell.Scenario.Sigma)

	var de *production.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, production.GuardNegativeBase, de.Guard)
	assert.Contains(t, err.Error(), "broken")
}

func TestDomainErrorReportIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 8

	_, first := New(cfg, nil).Run(context.Background(), badVariant())
	require.Error(t, first)
	for i := 0; i < 10; i++ {
		_, err := New(cfg, nil).Run(context.Background(), badVariant())
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
}

func TestConfigurationErrorSurfaces(t *testing.T) {
	v := grid.SliderVariant()
	v.Labels = append(v.Labels, grid.ScenarioLabel{Sigma: -5, Label: "CES-4"})

	_, err := New(DefaultConfig(), nil).Run(context.Background(), v)
	var ce *grid.ConfigurationError
	require.True(t, errors.As(err, &ce), "expected ConfigurationError, got %v", err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(DefaultConfig(), nil).Run(ctx, grid.SliderVariant())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordMatchesHeader(t *testing.T) {
	table := runVariant(t, grid.CES075Variant(), DefaultConfig())
	header := Header()
	require.Len(t, header, 16)
	assert.Equal(t, "a_high", header[0])
	assert.Equal(t, "e_tot", header[15])
	for _, rec := range table.Records() {
		require.Len(t, rec, len(header))
	}

	r := findRow(t, table, grid.Key{Gap: grid.GapLarge, XHigh: 9, Sigma: 1, Theta: 1})
	assert.Equal(t,
		[]string{"6", "1", "large", "9", "0", "1", "1", "ADD", "2", "7.5", "0.5", "15", "1", "15", "1", "16"},
		r.Record())
}
