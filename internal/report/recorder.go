// Package report records the population time series of a run and writes it
// as CSV and as a line chart.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"outbreak/internal/sim"
)

// ErrNoData is returned when a chart is requested for fewer than two steps.
var ErrNoData = errors.New("report: not enough steps recorded")

// Row is one step of the time series.
type Row struct {
	Step, Day  int
	Counts     sim.Counts
	Infections int
	Recoveries int
	Deaths     int
}

var header = []string{
	"run_id", "step", "day",
	"susceptible", "infected", "recovered", "dead",
	"infections", "recoveries", "deaths",
}

// Recorder is a sim.Sink that keeps one Row per frame.
type Recorder struct {
	RunID string
	rows  []Row
}

func NewRecorder(runID string) *Recorder {
	return &Recorder{RunID: runID}
}

func (r *Recorder) Present(f sim.Frame) error {
	rep := f.Report
	r.rows = append(r.rows, Row{
		Step:       rep.Step,
		Day:        rep.Day,
		Counts:     rep.Counts,
		Infections: rep.Infections,
		Recoveries: rep.Recoveries,
		Deaths:     rep.Deaths,
	})
	return nil
}

// Rows returns the recorded series. The slice must not be modified.
func (r *Recorder) Rows() []Row { return r.rows }

// Peak returns the row with the most simultaneous infections; ok is false
// when nothing was recorded.
func (r *Recorder) Peak() (row Row, ok bool) {
	for i, x := range r.rows {
		if i == 0 || x.Counts.Infected > row.Counts.Infected {
			row, ok = x, true
		}
	}
	return row, ok
}

func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	itoa := strconv.Itoa
	for _, x := range r.rows {
		rec := []string{
			r.RunID, itoa(x.Step), itoa(x.Day),
			itoa(x.Counts.Susceptible), itoa(x.Counts.Infected),
			itoa(x.Counts.Recovered), itoa(x.Counts.Dead),
			itoa(x.Infections), itoa(x.Recoveries), itoa(x.Deaths),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", x.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to path.
func (r *Recorder) SaveCSV(path string) error {
	return saveTo(path, r.WriteCSV)
}

// SaveChart renders the series chart to path as PNG.
func (r *Recorder) SaveChart(path string) error {
	return saveTo(path, r.RenderChart)
}

func saveTo(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
