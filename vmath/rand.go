package vmath

// FastRand is a xorshift64 generator (13, 17, 5)
// Not safe for concurrent use; identical seeds yield identical streams
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator; zero is remapped since xorshift has a fixed point at 0
func NewFastRand(seed uint64) *FastRand {
	r := &FastRand{}
	r.Seed(seed)
	return r
}

// Seed restarts the stream, allowing a value receiver to be reused without allocation
func (r *FastRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.state = seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Uint64 returns a value over the full 64-bit range
func (r *FastRand) Uint64() uint64 {
	return r.Next()
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// IntRange returns a value in [lo, hi] inclusive
func (r *FastRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatRange returns a value in [lo, hi)
func (r *FastRand) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// SplitMix64 applies one splitmix64 step to x
// Used to derive a child seed so the child stream does not replay the parent's next outputs
func SplitMix64(x uint64) uint64 {
	z := x + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
