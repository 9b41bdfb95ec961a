package report

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region layout
const (
	panelWidth  = 420
	panelHeight = 360
	marginLeft  = 48
	marginRight = 16
	marginTop   = 56
	suptitleH   = 22
	marginBot   = 44
	markerR     = 3.5
)

// Series colors: darkorange, green, cornflowerblue.
var (
	colorE1   = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	colorE2   = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	colorETot = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	colorGrid = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorAxis = color.Black
)

type series struct {
	name  string
	color color.Color
	value func(pipeline.Row) int
}

var plotSeries = []series{
	{"e1_rounded", colorE1, func(r pipeline.Row) int { return r.E1Rounded }},
	{"e2_rounded", colorE2, func(r pipeline.Row) int { return r.E2Rounded }},
	{"e_tot", colorETot, func(r pipeline.Row) int { return r.ETot }},
}

// #endregion layout

// #region plot-sink
// PlotSink renders one PNG per (scenario, theta) group into Dir.
type PlotSink struct {
	Dir string
	Log *zap.Logger
}

// FileName is the PNG name of a group.
func FileName(g Group) string {
	return fmt.Sprintf("%s_theta%d.png", g.Scenario, g.Theta)
}

func (s PlotSink) Write(ctx context.Context, t pipeline.Table) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}

	for _, g := range Groups(t) {
		if err := ctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := RenderGroup(&buf, g); err != nil {
			return fmt.Errorf("render %s θ=%d: %w", g.Scenario, g.Theta, err)
		}
		path := filepath.Join(s.Dir, FileName(g))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		log.Debug("plot written", zap.String("path", path))
	}
	return nil
}

// #endregion plot-sink

// #region render
// RenderGroup draws one panel per gap side by side under a figure title and
// encodes the result as PNG. Panels share the y range.
func RenderGroup(w io.Writer, g Group) error {
	if len(g.Panels) == 0 {
		return fmt.Errorf("group %s θ=%d has no rows", g.Scenario, g.Theta)
	}

	width := panelWidth * len(g.Panels)
	dc := gg.NewContext(width, panelHeight)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(colorAxis)
	dc.DrawStringAnchored(fmt.Sprintf("%s production, θ=%d", g.Scenario, g.Theta), float64(width)/2, suptitleH/2, 0.5, 0.5)

	yMax := GroupYMax(g)
	for i, p := range g.Panels {
		title := fmt.Sprintf("%s, θ=%d, %s gap", g.Scenario, g.Theta, p.Gap)
		drawPanel(dc, float64(i*panelWidth), title, p, yMax)
	}
	return dc.EncodePNG(w)
}

// GroupYMax is the y-axis limit shared by every panel of a group: the
// largest plotted value, at least 1.
func GroupYMax(g Group) int {
	yMax := 1
	for _, p := range g.Panels {
		for _, r := range p.Rows {
			for _, s := range plotSeries {
				yMax = max(yMax, s.value(r))
			}
		}
	}
	return yMax
}

func drawPanel(dc *gg.Context, ox float64, title string, p Panel, yMax int) {
	left := ox + marginLeft
	right := ox + panelWidth - marginRight
	top := float64(marginTop)
	bottom := float64(panelHeight - marginBot)

	xMax := 1
	for _, r := range p.Rows {
		xMax = max(xMax, r.Endowment.XHigh)
	}
	px := func(x int) float64 { return left + (right-left)*float64(x)/float64(xMax) }
	py := func(y int) float64 { return bottom - (bottom-top)*float64(y)/float64(yMax) }

	// grid
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	dc.SetDash(4, 3)
	for x := 0; x <= xMax; x++ {
		dc.DrawLine(px(x), top, px(x), bottom)
		dc.Stroke()
	}
	step := tickStep(yMax)
	for y := 0; y <= yMax; y += step {
		dc.DrawLine(left, py(y), right, py(y))
		dc.Stroke()
	}
	dc.SetDash()

	// axes and ticks
	dc.SetColor(colorAxis)
	dc.DrawLine(left, bottom, right, bottom)
	dc.DrawLine(left, top, left, bottom)
	dc.Stroke()
	for x := 0; x <= xMax; x++ {
		dc.DrawStringAnchored(strconv.Itoa(x), px(x), bottom+12, 0.5, 0.5)
	}
	for y := 0; y <= yMax; y += step {
		dc.DrawStringAnchored(strconv.Itoa(y), left-8, py(y), 1, 0.5)
	}
	dc.DrawStringAnchored(title, (left+right)/2, (suptitleH+top)/2, 0.5, 0.5)
	dc.DrawStringAnchored("x_high", (left+right)/2, float64(panelHeight)-12, 0.5, 0.5)

	// series
	dc.SetLineWidth(2)
	for _, s := range plotSeries {
		dc.SetColor(s.color)
		for i, r := range p.Rows {
			x, y := px(r.Endowment.XHigh), py(s.value(r))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		for _, r := range p.Rows {
			dc.DrawCircle(px(r.Endowment.XHigh), py(s.value(r)), markerR)
			dc.Fill()
		}
	}

	// legend
	lx, ly := right-90, top+8
	for i, s := range plotSeries {
		y := ly + float64(i)*14
		dc.SetColor(s.color)
		dc.DrawLine(lx, y, lx+16, y)
		dc.Stroke()
		dc.SetColor(colorAxis)
		dc.DrawStringAnchored(s.name, lx+20, y, 0, 0.5)
	}
}

func tickStep(yMax int) int {
	switch {
	case yMax <= 10:
		return 1
	case yMax <= 20:
		return 2
	default:
		return 5
	}
}

// #endregion render
