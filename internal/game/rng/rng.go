package rng

// Stream is a small deterministic pseudo-random stream with value
// semantics. Next returns the drawn value together with the advanced
// stream instead of mutating in place, so any state that embeds a
// Stream can be copied, compared and replayed freely.
type Stream struct {
	State uint64 `json:"state"`
}

// Knuth MMIX LCG constants.
const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407
)

// New seeds a stream. One warm-up step keeps small seeds from leaking
// into the first draw.
func New(seed int64) Stream {
	s := Stream{State: uint64(seed)}
	_, s = s.Next()
	return s
}

// Next advances the stream and returns the raw 64-bit value.
func (s Stream) Next() (uint64, Stream) {
	n := s.State*lcgMul + lcgInc
	return n, Stream{State: n}
}

// Intn returns a value in [0, n). Panics if n <= 0, same as math/rand.
func (s Stream) Intn(n int) (int, Stream) {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	v, ns := s.Next()
	return int(v % uint64(n)), ns
}

// Float64 returns a value in [0, 1).
func (s Stream) Float64() (float64, Stream) {
	v, ns := s.Next()
	return float64(v>>11) / (1 << 53), ns
}

// Fork derives an independent stream without consuming from s. Callers
// that only peek at randomness (bot policies, previews) fork with a
// fixed salt so the parent stream replays identically.
func (s Stream) Fork(salt uint64) Stream {
	_, ns := Stream{State: s.State ^ salt}.Next()
	return ns
}
