package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

func derive(t *testing.T, v grid.Variant) pipeline.Table {
	t.Helper()
	table, err := pipeline.New(pipeline.DefaultConfig(), nil).Run(context.Background(), v)
	require.NoError(t, err)
	return table
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	table := derive(t, grid.SliderVariant())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 361)
	assert.Equal(t, pipeline.Header(), records[0])
	assert.Equal(t, table.Rows[0].Record(), records[1])
}

func TestWriteCSVIsByteIdenticalAcrossRuns(t *testing.T) {
	for _, v := range grid.DefaultVariants() {
		var a, b bytes.Buffer
		require.NoError(t, WriteCSV(&a, derive(t, v)))
		require.NoError(t, WriteCSV(&b, derive(t, v)))
		assert.True(t, bytes.Equal(a.Bytes(), b.Bytes()), "variant %s", v.Name)
	}
}

func TestCSVSinkWritesVariantFile(t *testing.T) {
	dir := t.TempDir()
	table := derive(t, grid.CES075Variant())

	sink := CSVSink{Dir: filepath.Join(dir, "out")}
	require.NoError(t, sink.Write(context.Background(), table))

	data, err := os.ReadFile(sink.Path(grid.VariantCES075))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 301)
	assert.Equal(t, strings.Join(pipeline.Header(), ","), lines[0])
}

func TestGroupsFirstAppearanceOrder(t *testing.T) {
	table := derive(t, grid.SliderVariant())
	groups := Groups(table)

	// Sorted by sigma ascending, theta inner.
	require.Len(t, groups, 12)
	assert.Equal(t, "CES-4", groups[0].Scenario)
	assert.Equal(t, 1, groups[0].Theta)
	assert.Equal(t, "CES-4", groups[1].Scenario)
	assert.Equal(t, 2, groups[1].Theta)
	assert.Equal(t, "ADD", groups[11].Scenario)

	for _, g := range groups {
		require.Len(t, g.Panels, 3)
		assert.Equal(t, grid.GapLarge, g.Panels[0].Gap)
		assert.Equal(t, grid.GapMedium, g.Panels[1].Gap)
		assert.Equal(t, grid.GapSmall, g.Panels[2].Gap)
		for _, p := range g.Panels {
			require.Len(t, p.Rows, 10)
			for i, r := range p.Rows {
				assert.Equal(t, i, r.Endowment.XHigh)
				assert.Equal(t, g.Scenario, r.Scenario.Label)
				assert.Equal(t, g.Theta, r.Scenario.Theta)
			}
		}
	}
}

func TestPlotSinkRendersOnePNGPerGroup(t *testing.T) {
	dir := t.TempDir()
	table := derive(t, grid.CES075Variant())

	require.NoError(t, PlotSink{Dir: dir}.Write(context.Background(), table))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	f, err := os.Open(filepath.Join(dir, "CD_theta2.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3*panelWidth, img.Bounds().Dx())
	assert.Equal(t, panelHeight, img.Bounds().Dy())
}

func TestGroupYMaxIsSharedAcrossPanels(t *testing.T) {
	table := derive(t, grid.SliderVariant())
	for _, g := range Groups(table) {
		want := 1
		for _, p := range g.Panels {
			for _, r := range p.Rows {
				want = max(want, r.E1Rounded, r.E2Rounded, r.ETot)
			}
		}
		assert.Equal(t, want, GroupYMax(g), "%s θ=%d", g.Scenario, g.Theta)
	}

	// The panel with the smaller totals still gets the group's limit.
	g := Group{Scenario: "ADD", Theta: 1, Panels: []Panel{
		{Gap: grid.GapLarge, Rows: []pipeline.Row{{ETot: 20}}},
		{Gap: grid.GapSmall, Rows: []pipeline.Row{{ETot: 4}}},
	}}
	assert.Equal(t, 20, GroupYMax(g))
}

func TestRenderGroupRejectsEmptyGroup(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderGroup(&buf, Group{Scenario: "ADD", Theta: 1}))
}

func TestRenderTableContainsEveryGroup(t *testing.T) {
	out := RenderTable(derive(t, grid.CES075Variant()))
	for _, c := range TableColumns {
		assert.Contains(t, out, string(c))
	}
	assert.Contains(t, out, "ces075  ADD θ=1")
	assert.Contains(t, out, "CES-4 θ=2")
}

func TestRenderSummaries(t *testing.T) {
	sums, err := pipeline.Describe(derive(t, grid.SliderVariant()))
	require.NoError(t, err)
	out := RenderSummaries("slider", sums)
	assert.Contains(t, out, "e1_rounded")
	assert.Contains(t, out, "360")
}

type failingSink struct{}

func (failingSink) Write(context.Context, pipeline.Table) error { return errors.New("boom") }

func TestMultiStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	m := Multi{failingSink{}, CSVSink{Dir: dir}}
	err := m.Write(context.Background(), derive(t, grid.CES075Variant()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, statErr := os.Stat(filepath.Join(dir, "ces075.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
