package report

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outbreak/internal/sim"
)

func recordRun(t *testing.T, steps int) *Recorder {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Susceptible, cfg.Infected = 60, 4
	cfg.CyclesToFate = 20
	cfg.MortalityRate = 0.2
	cfg.Seed = 5
	s, err := sim.New(cfg)
	require.NoError(t, err)

	rec := NewRecorder("run-x")
	for i := 0; i < steps; i++ {
		_, err := s.Step()
		require.NoError(t, err)
		require.NoError(t, rec.Present(s.Frame()))
	}
	return rec
}

func TestRecorderKeepsOneRowPerFrame(t *testing.T) {
	rec := recordRun(t, 40)
	rows := rec.Rows()
	require.Len(t, rows, 40)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Step)
		assert.Equal(t, (i+1)/sim.StepsPerDay, r.Day)
		assert.Equal(t, 64, r.Counts.Total())
	}
}

func TestPeak(t *testing.T) {
	rec := NewRecorder("p")
	_, ok := rec.Peak()
	assert.False(t, ok)

	for i, infected := range []int{2, 9, 4} {
		require.NoError(t, rec.Present(sim.Frame{Report: sim.StepReport{
			Step:   i + 1,
			Counts: sim.Counts{Infected: infected},
		}}))
	}
	peak, ok := rec.Peak()
	require.True(t, ok)
	assert.Equal(t, 2, peak.Step)
}

func TestWriteCSV(t *testing.T) {
	rec := NewRecorder("run-9")
	require.NoError(t, rec.Present(sim.Frame{Report: sim.StepReport{
		Step:       8,
		Day:        1,
		Infections: 2,
		Deaths:     1,
		Counts:     sim.Counts{Susceptible: 3, Infected: 4, Recovered: 5, Dead: 6},
	}}))

	var buf bytes.Buffer
	require.NoError(t, rec.WriteCSV(&buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"run-9", "8", "1", "3", "4", "5", "6", "2", "0", "1"}, records[1])
}

func TestRenderChartProducesPNG(t *testing.T) {
	rec := recordRun(t, 64)
	var buf bytes.Buffer
	require.NoError(t, rec.RenderChart(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestRenderChartNeedsTwoSteps(t *testing.T) {
	rec := recordRun(t, 1)
	assert.ErrorIs(t, rec.RenderChart(&bytes.Buffer{}), ErrNoData)
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	rec := recordRun(t, 16)
	require.NoError(t, rec.SaveCSV(filepath.Join(dir, "counts.csv")))
	require.NoError(t, rec.SaveChart(filepath.Join(dir, "counts.png")))

	for _, name := range []string{"counts.csv", "counts.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
