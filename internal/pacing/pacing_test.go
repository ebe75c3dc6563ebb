package pacing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outbreak/internal/sim"
)

var _ sim.Pacer = (*Ticker)(nil)

func TestUnpacedNeverBlocks(t *testing.T) {
	tk := New(0, 1)
	assert.True(t, math.IsInf(tk.Rate(), 1))

	start := time.Now()
	for i := 0; i < 1000; i++ {
		require.NoError(t, tk.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitSpacesSteps(t *testing.T) {
	tk := New(100, 1)
	ctx := context.Background()
	require.NoError(t, tk.Wait(ctx))

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, tk.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestWaitHonoursCancellation(t *testing.T) {
	tk := New(0.5, 1)
	require.NoError(t, tk.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tk.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetRate(t *testing.T) {
	tk := New(10, 2)
	tk.SetRate(60)
	assert.Equal(t, 60.0, tk.Rate())
	tk.SetRate(0)
	assert.True(t, math.IsInf(tk.Rate(), 1))

	tk.SetRate(30)
	tk.SetRate(math.Inf(1))
	assert.True(t, math.IsInf(tk.Rate(), 1))
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, tk.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}
