package gen

// Random is the randomness a populator pass draws from. Implementations
// must be deterministic for a given seed.
type Random interface {
	IntN(n int) int
	Float64() float64
}

// RandFactory returns the random source for one pass of one chunk.
type RandFactory func(cx, cy int, salt int64) Random

// Salts keep the passes' random streams independent.
const (
	saltLiquid int64 = 100
	saltClouds int64 = 200
)

// chunkRNG is a simple deterministic RNG for per-chunk generation.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cy int, salt int64) *chunkRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cy)*132897987541 + salt)
	return &chunkRNG{state: s}
}

// ChunkRand is the default RandFactory: a seeded LCG per chunk and salt.
func ChunkRand(seed int64) RandFactory {
	return func(cx, cy int, salt int64) Random {
		return newChunkRNG(seed, cx, cy, salt)
	}
}

func (r *chunkRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return uint64(r.state)
}

func (r *chunkRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n))
}

func (r *chunkRNG) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}
