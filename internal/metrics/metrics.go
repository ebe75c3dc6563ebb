// Package metrics exposes per-step population figures to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"outbreak/internal/sim"
)

const namespace = "outbreak"

// Sink mirrors every frame into gauges and counters on its own registry.
type Sink struct {
	reg         *prometheus.Registry
	population  *prometheus.GaugeVec
	transitions *prometheus.CounterVec
	step        prometheus.Gauge
	day         prometheus.Gauge
}

// New registers the outbreak collectors, labelled with runID.
func New(runID string) (*Sink, error) {
	labels := prometheus.Labels{"run_id": runID}
	s := &Sink{
		reg: prometheus.NewRegistry(),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "agents",
			Help:        "Agents per health state.",
			ConstLabels: labels,
		}, []string{"state"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "transitions_total",
			Help:        "Health state transitions by target state.",
			ConstLabels: labels,
		}, []string{"to"}),
		step: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "step",
			Help:        "Last completed step.",
			ConstLabels: labels,
		}),
		day: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "day",
			Help:        "Simulated days elapsed.",
			ConstLabels: labels,
		}),
	}
	for _, c := range []prometheus.Collector{s.population, s.transitions, s.step, s.day} {
		if err := s.reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return s, nil
}

func (s *Sink) Present(f sim.Frame) error {
	r := f.Report
	s.population.WithLabelValues(sim.Susceptible.String()).Set(float64(r.Counts.Susceptible))
	s.population.WithLabelValues(sim.Infected.String()).Set(float64(r.Counts.Infected))
	s.population.WithLabelValues(sim.Recovered.String()).Set(float64(r.Counts.Recovered))
	s.population.WithLabelValues(sim.Dead.String()).Set(float64(r.Counts.Dead))
	s.transitions.WithLabelValues(sim.Infected.String()).Add(float64(r.Infections))
	s.transitions.WithLabelValues(sim.Recovered.String()).Add(float64(r.Recoveries))
	s.transitions.WithLabelValues(sim.Dead.String()).Add(float64(r.Deaths))
	s.step.Set(float64(r.Step))
	s.day.Set(float64(r.Day))
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (s *Sink) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	}
}
