// Package report renders explorer results as PNG charts and xlsx workbooks.
package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"oxexplorer/internal/series"
)

// Chart dimensions.
var (
	ChartWidth  = 12 * vg.Inch
	ChartHeight = 6 * vg.Inch
)

// TrendChart draws one line per series against the shared period axis and
// writes it to w as PNG.
func TrendChart(w io.Writer, lines []series.Series, axis []string, title string) error {
	if len(axis) == 0 {
		return fmt.Errorf("trend chart: no periods to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Quarter"
	p.Y.Label.Text = "Price (£)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	index := make(map[string]int, len(axis))
	for i, label := range axis {
		index[label] = i
	}

	for i, s := range lines {
		if len(s.Data) == 0 {
			continue
		}
		xys := make(plotter.XYs, 0, len(s.Data))
		for _, pt := range s.Data {
			x, ok := index[pt.Label]
			if !ok {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(x), Y: pt.Value})
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("trend chart %s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}

	p.NominalX(axis...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return writePNG(p, w)
}

// BarChart draws one bar per entity and writes it to w as PNG.
func BarChart(w io.Writer, bars []series.Bar, title string) error {
	if len(bars) == 0 {
		return fmt.Errorf("bar chart: no values to plot")
	}

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Ward"
	p.Y.Label.Text = "Price (£)"
	p.Add(plotter.NewGrid())

	chart, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	chart.Color = plotutil.Color(0)
	chart.LineStyle.Width = vg.Length(0)
	p.Add(chart)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	return writePNG(p, w)
}

func writePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(ChartWidth, ChartHeight, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
