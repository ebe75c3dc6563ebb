package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"outbreak/internal/sim"
)

func strokeOf(c sim.RGB) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// RenderChart draws the four group sizes against simulated days.
func (r *Recorder) RenderChart(w io.Writer) error {
	if len(r.rows) < 2 {
		return ErrNoData
	}

	days := make([]float64, len(r.rows))
	ys := [4][]float64{}
	for s := range ys {
		ys[s] = make([]float64, len(r.rows))
	}
	for i, x := range r.rows {
		days[i] = float64(x.Step) / sim.StepsPerDay
		for s := sim.Susceptible; s <= sim.Dead; s++ {
			ys[s][i] = float64(x.Counts.Of(s))
		}
	}

	series := make([]chart.Series, 0, len(ys))
	for s := sim.Susceptible; s <= sim.Dead; s++ {
		series = append(series, chart.ContinuousSeries{
			Name:    s.String(),
			XValues: days,
			YValues: ys[s],
			Style:   chart.Style{StrokeColor: strokeOf(s.Color()), StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  "outbreak " + r.RunID,
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "day",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "agents",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
