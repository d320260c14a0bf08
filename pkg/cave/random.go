package cave

import (
	"strconv"
	"time"
)

// The seed hash and generator below are part of the package's stable
// surface: changing either changes every cave produced from a given seed.

const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// HashSeed returns the 32-bit hash of a seed string: h = h*31 + b over the
// UTF-8 bytes, starting from 0, with wraparound.
func HashSeed(seed string) uint32 {
	var h uint32
	for i := 0; i < len(seed); i++ {
		h = h*31 + uint32(seed[i])
	}
	return h
}

// Random is a 64-bit linear congruential generator.
// It is not safe for concurrent use.
type Random struct {
	state uint64
}

// NewRandom returns a generator whose state starts at seed.
func NewRandom(seed uint32) *Random {
	return &Random{state: uint64(seed)}
}

// NewRandomFromString seeds a generator with HashSeed(seed).
func NewRandomFromString(seed string) *Random {
	return NewRandom(HashSeed(seed))
}

// Uint32 advances the generator once and returns the high 32 bits of the state.
func (r *Random) Uint32() uint32 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return uint32(r.state >> 32)
}

// Next returns a value in [min, max). When max <= min it returns min
// without advancing the generator.
func (r *Random) Next(min, max int) int {
	if max <= min {
		return min
	}
	span := uint64(max - min)
	return min + int((uint64(r.Uint32())*span)>>32)
}

// Clock supplies the current time for seed derivation.
type Clock func() time.Time

// SeedFromClock derives a seed string from the clock's Unix nanoseconds.
func SeedFromClock(clock Clock) string {
	if clock == nil {
		clock = time.Now
	}
	return strconv.FormatInt(clock().UnixNano(), 10)
}

// Resolve returns a copy of c whose Seed is final. When UseRandomSeed is set
// the seed is derived from clock and the flag is cleared, so the returned
// config reproduces the same cave on every later run.
func (c Config) Resolve(clock Clock) Config {
	if c.UseRandomSeed {
		c.Seed = SeedFromClock(clock)
		c.UseRandomSeed = false
	}
	return c
}
