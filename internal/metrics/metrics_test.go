package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outbreak/internal/sim"
)

func TestPresentUpdatesCollectors(t *testing.T) {
	s, err := New("run-1")
	require.NoError(t, err)

	require.NoError(t, s.Present(sim.Frame{Report: sim.StepReport{
		Step:       8,
		Day:        1,
		Infections: 3,
		Counts:     sim.Counts{Susceptible: 90, Infected: 10},
	}}))
	require.NoError(t, s.Present(sim.Frame{Report: sim.StepReport{
		Step:       9,
		Day:        1,
		Infections: 1,
		Deaths:     2,
		Counts:     sim.Counts{Susceptible: 89, Infected: 9, Dead: 2},
	}}))

	assert.Equal(t, 89.0, testutil.ToFloat64(s.population.WithLabelValues("susceptible")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.population.WithLabelValues("dead")))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.transitions.WithLabelValues("infected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.transitions.WithLabelValues("dead")))
	assert.Equal(t, 9.0, testutil.ToFloat64(s.step))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.day))
}

func TestHandlerExposesRunLabel(t *testing.T) {
	s, err := New("run-7")
	require.NoError(t, err)
	require.NoError(t, s.Present(sim.Frame{Report: sim.StepReport{Step: 1, Counts: sim.Counts{Susceptible: 5}}}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `outbreak_agents{run_id="run-7",state="susceptible"} 5`)
	assert.Contains(t, string(body), "outbreak_step")
}
