// Package audio plays short procedural cues for the transitions of each
// step.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"outbreak/internal/sim"
)

// maxVoices bounds simultaneous cues so bursts of transitions don't clip.
const maxVoices = 3

// Output plays a cue at the given gain in [0,1].
type Output interface {
	Play(c Cue, gain float64)
}

// Device is an Output backed by the system audio device.
type Device struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	voices int32
	cache  map[Cue][]byte
}

// Open initialises the audio device. The device may still be warming up
// when Open returns; cues played before it is ready are dropped.
func Open(volume float64) (*Device, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	d := &Device{ctx: ctx, ready: ready, volume: volume, cache: make(map[Cue][]byte)}
	for _, c := range []Cue{CueInfection, CueRecovery, CueDeath, CueDay} {
		d.cache[c] = Generate(c)
	}
	return d, nil
}

func (d *Device) Play(c Cue, gain float64) {
	if gain <= 0 {
		return
	}
	select {
	case <-d.ready:
	default:
		return
	}
	samples := d.cache[c]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&d.voices, 1) > maxVoices {
		atomic.AddInt32(&d.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&d.voices, -1)
		player := d.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(d.volume * math.Min(gain, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Sink turns step reports into cues. At most one cue sounds per step:
// deaths first, then infections, then recoveries; quiet steps that close
// a day tick.
type Sink struct {
	Out Output
}

func (s Sink) Present(f sim.Frame) error {
	r := f.Report
	switch {
	case r.Deaths > 0:
		s.Out.Play(CueDeath, gainFor(r.Deaths))
	case r.Infections > 0:
		s.Out.Play(CueInfection, gainFor(r.Infections))
	case r.Recoveries > 0:
		s.Out.Play(CueRecovery, gainFor(r.Recoveries))
	case r.Step > 0 && r.Step%sim.StepsPerDay == 0:
		s.Out.Play(CueDay, 0.3)
	}
	return nil
}

// gainFor grows with the number of simultaneous transitions and saturates
// at four.
func gainFor(n int) float64 {
	return math.Min(0.4+0.15*float64(n), 1)
}
