package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPacer struct{ waits int }

func (p *countingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}

func smallSim(t *testing.T) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Susceptible, cfg.Infected = 20, 2
	cfg.Seed = 3
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestRunStopsAfterMaxSteps(t *testing.T) {
	s := smallSim(t)
	pacer := &countingPacer{}
	var steps []int
	sink := SinkFunc(func(f Frame) error {
		steps = append(steps, f.Report.Step)
		return nil
	})

	require.NoError(t, Run(context.Background(), s, sink, pacer, 12))
	assert.Len(t, steps, 12)
	assert.Equal(t, 12, steps[11])
	assert.Equal(t, 12, pacer.waits)
}

func TestRunEndsCleanlyWhenDisplayStops(t *testing.T) {
	s := smallSim(t)
	n := 0
	sink := SinkFunc(func(Frame) error {
		n++
		if n == 4 {
			return ErrStopped
		}
		return nil
	})

	require.NoError(t, Run(context.Background(), s, sink, nil, 0))
	assert.Equal(t, 4, s.StepCount())
}

func TestRunObservesCancellationAtStepBoundary(t *testing.T) {
	s := smallSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	sink := SinkFunc(func(f Frame) error {
		if f.Report.Step == 3 {
			cancel()
		}
		return nil
	})

	require.NoError(t, Run(ctx, s, sink, nil, 0))
	assert.Equal(t, 3, s.StepCount())
}

func TestRunPropagatesSinkFailure(t *testing.T) {
	s := smallSim(t)
	boom := errors.New("boom")
	err := Run(context.Background(), s, SinkFunc(func(Frame) error { return boom }), nil, 10)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.StepCount())
}
