package klondike

// Linear congruential parameters. The small modulus keeps every value in
// exact float64 range, so the emitted stream is bit-identical across
// platforms for a given seed.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Rand is the deterministic generator behind every shuffle, implementing
// x ← (x·9301 + 49297) mod 233280 and emitting x/233280 per call. Two
// generators with equal seeds produce identical streams forever.
type Rand struct {
	x int64
}

// NewRand creates a generator from a seed. Seeds outside [0, 233280) are
// folded into the modulus, so negative seeds are well-defined and any two
// congruent seeds replay the same stream.
func NewRand(seed int64) *Rand {
	x := seed % lcgModulus
	if x < 0 {
		x += lcgModulus
	}
	return &Rand{x: x}
}

// Float64 advances the generator and returns the next value in [0, 1)
func (r *Rand) Float64() float64 {
	r.x = (r.x*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.x) / lcgModulus
}

// Intn returns the next value scaled to [0, n). It panics if n <= 0,
// matching math/rand.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("klondike: Intn called with n <= 0")
	}
	return int(r.Float64() * float64(n))
}
