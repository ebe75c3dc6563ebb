package sim

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand is a small deterministic RNG (xorshift64*). A simulation owns exactly
// one instance; every random draw (placement, jitter, outcome) goes through it
// so a run is reproducible from its seed.
type Rand struct {
	s uint64
}

// NewRand returns a generator for seed. Nearby seeds are decorrelated by
// mixing them first.
func NewRand(seed uint64) *Rand {
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return &Rand{s: s}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Float64 returns a uniform sample in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// UnitSquare returns a vector uniform in [-1,1]².
func (r *Rand) UnitSquare() Vec2 {
	return Vec2{X: r.RangeF(-1, 1), Y: r.RangeF(-1, 1)}
}
