package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// TableColumns are the columns shown by RenderTable.
var TableColumns = []pipeline.Column{
	pipeline.ColAGap, pipeline.ColXHigh, pipeline.ColXLow,
	pipeline.ColScenario, pipeline.ColTheta,
	pipeline.ColAlpha, pipeline.ColEHigh, pipeline.ColELow,
	pipeline.ColE1Rounded, pipeline.ColE2Rounded, pipeline.ColETot,
}

// RenderTable renders one bordered table per (scenario, theta) group.
func RenderTable(t pipeline.Table) string {
	headers := make([]string, len(TableColumns))
	for i, c := range TableColumns {
		headers[i] = string(c)
	}

	var out string
	for _, g := range Groups(t) {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
			Headers(headers...)
		for _, p := range g.Panels {
			for _, r := range p.Rows {
				tbl.Row(cells(r)...)
			}
		}
		out += titleStyle.Render(fmt.Sprintf("%s  %s θ=%d", t.Variant, g.Scenario, g.Theta)) + "\n"
		out += tbl.Render() + "\n"
	}
	return out
}

// RenderSummaries renders Describe output as a single table.
func RenderSummaries(title string, summaries []pipeline.Summary) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers("", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range summaries {
		tbl.Row(
			string(s.Column),
			strconv.Itoa(s.Count),
			fmtStat(s.Mean), fmtStat(s.Std), fmtStat(s.Min),
			fmtStat(s.Q25), fmtStat(s.Q50), fmtStat(s.Q75), fmtStat(s.Max),
		)
	}
	return titleStyle.Render(title) + "\n" + tbl.Render() + "\n"
}

func cells(r pipeline.Row) []string {
	out := make([]string, len(TableColumns))
	for i, c := range TableColumns {
		switch c {
		case pipeline.ColAGap:
			out[i] = string(r.Capability.Gap)
		case pipeline.ColScenario:
			out[i] = r.Scenario.Label
		case pipeline.ColAlpha, pipeline.ColEHigh, pipeline.ColELow:
			v, _ := r.Float(c)
			out[i] = fmtStat(v)
		default:
			v, _ := r.Float(c)
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out
}

func fmtStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
