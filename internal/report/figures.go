package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/climetrics/scenreport/internal/analysis"
	apperrors "github.com/climetrics/scenreport/internal/errors"
)

var bandColors = map[string]color.RGBA{
	"1.5C": {R: 178, G: 24, B: 43, A: 255},
	"2C":   {R: 33, G: 102, B: 172, A: 255},
}

func bandColor(target string) color.RGBA {
	if c, ok := bandColors[target]; ok {
		return c
	}
	return color.RGBA{R: 80, G: 80, B: 80, A: 255}
}

// WriteTrajectoryFan draws the carbon-price fan: per warming target, the
// median trajectory as a solid line and the interquartile range as dashed
// lines.
func WriteTrajectoryFan(path string, bands []analysis.Band) error {
	p := plot.New()
	p.Title.Text = "Carbon price trajectories by warming target"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Carbon price (US$/tCO2)"
	p.Legend.Top = true

	for _, band := range bands {
		median := make(plotter.XYs, len(band.Years))
		q25 := make(plotter.XYs, len(band.Years))
		q75 := make(plotter.XYs, len(band.Years))
		for i, year := range band.Years {
			median[i] = plotter.XY{X: float64(year), Y: band.Median[i]}
			q25[i] = plotter.XY{X: float64(year), Y: band.Q25[i]}
			q75[i] = plotter.XY{X: float64(year), Y: band.Q75[i]}
		}

		medianLine, err := plotter.NewLine(median)
		if err != nil {
			return apperrors.NewInternalError("failed to build median line", err)
		}
		medianLine.Color = bandColor(band.Target)
		medianLine.Width = vg.Points(2)
		p.Add(medianLine)
		p.Legend.Add(fmt.Sprintf("%s median", band.Target), medianLine)

		for _, quart := range []plotter.XYs{q25, q75} {
			line, err := plotter.NewLine(quart)
			if err != nil {
				return apperrors.NewInternalError("failed to build quartile line", err)
			}
			line.Color = bandColor(band.Target)
			line.Width = vg.Points(1)
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(line)
		}
	}

	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to save figure %s", path), err)
	}
	return nil
}

// WritePairScatter draws the paired-NPV scatter: each point is one model's
// 2C/1.5C scenario pair, with a y=x reference line. Points above the line
// carry the carbon-price premium of the tighter target.
func WritePairScatter(path string, pairs []analysis.Pair) error {
	p := plot.New()
	p.Title.Text = "NPV carbon price: 1.5C vs 2C scenario pairs"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "NPV price, 2C scenario (US$/tCO2)"
	p.Y.Label.Text = "NPV price, 1.5C scenario (US$/tCO2)"

	points := make(plotter.XYs, len(pairs))
	labels := make([]string, len(pairs))
	maxValue := 0.0
	for i, pair := range pairs {
		points[i] = plotter.XY{X: pair.NPVHigh, Y: pair.NPVLow}
		labels[i] = pair.Model
		maxValue = math.Max(maxValue, math.Max(pair.NPVHigh, pair.NPVLow))
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return apperrors.NewInternalError("failed to build pair scatter", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 178, G: 24, B: 43, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(scatter)

	line := plotter.NewFunction(func(x float64) float64 { return x })
	line.Color = color.RGBA{A: 255}
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(line)

	labelPoints, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    points,
		Labels: labels,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to build pair labels", err)
	}
	p.Add(labelPoints)

	p.Add(plotter.NewGrid())

	p.X.Min = 0
	p.Y.Min = 0
	if maxValue > 0 {
		p.X.Max = maxValue * 1.15
		p.Y.Max = maxValue * 1.15
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to save figure %s", path), err)
	}
	return nil
}
