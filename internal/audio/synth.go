package audio

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Cue identifies a procedurally generated sound.
type Cue int

const (
	CueInfection Cue = iota
	CueRecovery
	CueDeath
	CueDay
)

func (c Cue) String() string {
	switch c {
	case CueInfection:
		return "infection"
	case CueRecovery:
		return "recovery"
	case CueDeath:
		return "death"
	case CueDay:
		return "day"
	default:
		return "unknown"
	}
}

// envelope shapes a cue over its normalised progress. Attack, decay and
// release are fractions of the cue length.
type envelope struct {
	attack, decay, sustain, release float64
}

func (e envelope) at(p float64) float64 {
	switch {
	case p < e.attack:
		return p / e.attack
	case p < e.attack+e.decay:
		return 1 - (p-e.attack)/e.decay*(1-e.sustain)
	case p < 1-e.release:
		return e.sustain
	default:
		return e.sustain * (1 - (p-(1-e.release))/e.release)
	}
}

// voice is a cue's length and a tone function giving sample i of n.
type voice struct {
	seconds float64
	tone    func(i, n int) float64
}

var voices = map[Cue]voice{
	// short rising blip with a gritty edge
	CueInfection: {0.09, func(i, n int) float64 {
		t, p := at(i, n)
		level := envelope{0.01, 0.5, 0, 0.1}.at(p)
		f := 520 + 640*p
		return (modulated(t, f, 2, 3*level)*0.45 + grit(i)*0.05) * level
	}},
	// C5 then E5, each note with its own envelope
	CueRecovery: {0.22, func(i, n int) float64 {
		t := float64(i) / SampleRate
		half := n / 2
		f, p := 523.25, float64(i)/float64(half)
		if i >= half {
			f, p = 659.25, float64(i-half)/float64(n-half)
		}
		level := envelope{0.02, 0.3, 0.4, 0.4}.at(p)
		return (math.Sin(2*math.Pi*f*t)*0.3 + modulated(t, f, 1, 0.4*level)*0.1) * level
	}},
	// low falling tone with a sub an octave down
	CueDeath: {0.45, func(i, n int) float64 {
		t, p := at(i, n)
		level := envelope{0.008, 0.25, 0.3, 0.45}.at(p)
		f := 220 * (1 - p*0.3)
		return (modulated(t, f, 2, 2*level)*0.32 + math.Sin(math.Pi*f*t)*0.1) * level
	}},
	// crisp click
	CueDay: {0.04, func(i, n int) float64 {
		t, p := at(i, n)
		return modulated(t, 1400-700*p, 1, 0.6) * envelope{0.004, 0.55, 0, 0.1}.at(p) * 0.2
	}},
}

// at returns the time in seconds and the progress of sample i of n.
func at(i, n int) (t, p float64) {
	return float64(i) / SampleRate, float64(i) / float64(n)
}

// modulated is a two-operator FM tone at carrier Hz.
func modulated(t, carrier, ratio, depth float64) float64 {
	return math.Sin(2*math.Pi*carrier*t + depth*math.Sin(2*math.Pi*carrier*ratio*t))
}

// grit is deterministic noise in [-1,1) for sample i.
func grit(i int) float64 {
	x := uint64(i)*0x9e3779b97f4a7c15 + 4242
	x = (x ^ x>>30) * 0xbf58476d1ce4e5b9
	x = (x ^ x>>27) * 0x94d049bb133111eb
	x ^= x >> 31
	return float64(int64(x>>33)-int64(1<<30)) / float64(1<<30)
}

// Generate renders c as stereo float32 LE samples, or nil for an unknown
// cue.
func Generate(c Cue) []byte {
	v, ok := voices[c]
	if !ok {
		return nil
	}
	n := int(v.seconds * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		putFrame(buf, i, v.tone(i, n))
	}
	return buf
}

// putFrame writes s, saturated into [-1,1], to both channels of frame i.
func putFrame(buf []byte, i int, s float64) {
	switch {
	case s > 1:
		s = 1 - 0.5/s
	case s < -1:
		s = -1 - 0.5/s
	default:
		s -= s * s * s / 3
	}
	bits := math.Float32bits(float32(s))
	binary.LittleEndian.PutUint32(buf[i*8:], bits)
	binary.LittleEndian.PutUint32(buf[i*8+4:], bits)
}
