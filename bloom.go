package mhash

import (
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/unkn0wn-root/mhash/internal/mathutil"
)

const (
	// 3 probes with 10 bits per item gives roughly a 1% false positive rate.
	defaultBloomProbes = 3
	defaultBitsPerItem = 10
	defaultBloomItems  = 1024
	maxBloomProbes     = 32
	maxBloomBits       = 1 << 40 // 128 GiB
	bitsPerWord        = 64
	bloomProbeSeedSalt = 0x6a09e667f3bcc909
)

// BloomConfig sizes a Bloom filter.
type BloomConfig struct {
	Bits   uint64 // rounded up to a power of two, at most 1<<40
	Probes int    // number of independent seeded hashes per key
	Seed   uint64 // family selector; filters with different seeds are unrelated
}

// DefaultBloomConfig sizes a filter for expected items at ~1% false positives.
func DefaultBloomConfig(expected int) BloomConfig {
	if expected <= 0 {
		expected = defaultBloomItems
	}
	return BloomConfig{
		Bits:   uint64(expected) * defaultBitsPerItem,
		Probes: defaultBloomProbes,
	}
}

// Validate reports whether cfg can build a filter.
func (cfg BloomConfig) Validate() error {
	if cfg.Bits == 0 {
		return wrapError("bloom", fmt.Errorf("%w: bits must be positive", ErrInvalidConfig))
	}
	if cfg.Bits > maxBloomBits {
		return wrapError("bloom", fmt.Errorf("%w: bits %d exceeds %d", ErrInvalidConfig, cfg.Bits, uint64(maxBloomBits)))
	}
	if cfg.Probes <= 0 || cfg.Probes > maxBloomProbes {
		return wrapError("bloom", fmt.Errorf("%w: probes must be in [1,%d], got %d", ErrInvalidConfig, maxBloomProbes, cfg.Probes))
	}
	return nil
}

// Bloom is a probabilistic set over Hashable keys. Each probe hashes the key
// under its own seed, so probes are independent members of the hash family.
// Add and Contains are safe for concurrent use.
type Bloom struct {
	words []atomic.Uint64
	size  uint64 // total bits, power of two
	seeds []uint64
	added atomic.Uint64
}

// BloomStats is a point-in-time view of a filter.
type BloomStats struct {
	Bits      uint64
	Probes    int
	SetBits   uint64
	Added     uint64
	FillRatio float64
	// Estimated is the cardinality estimate derived from the fill ratio.
	Estimated float64
}

// NewBloom creates a filter from cfg.
func NewBloom(cfg BloomConfig) (*Bloom, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := uint64(mathutil.NextPowerOf2(int(cfg.Bits)))
	words := size / bitsPerWord
	if words == 0 {
		words = 1
		size = bitsPerWord
	}

	seeds := make([]uint64, cfg.Probes)
	for i := range seeds {
		seeds[i] = HashUint64(cfg.Seed^bloomProbeSeedSalt, uint64(i))
	}

	return &Bloom{
		words: make([]atomic.Uint64, words),
		size:  size,
		seeds: seeds,
	}, nil
}

// Add inserts key.
func (b *Bloom) Add(key Hashable) {
	b.AddAndCheck(key)
}

// AddAndCheck inserts key and reports whether it was possibly present before.
func (b *Bloom) AddAndCheck(key Hashable) bool {
	present := true
	for _, seed := range b.seeds {
		pos := Mask(Hash(seed, key), b.size)
		if !b.setBit(pos) {
			present = false
		}
	}
	b.added.Add(1)
	return present
}

// Contains reports whether key may have been added. False positives are
// possible; false negatives are not.
func (b *Bloom) Contains(key Hashable) bool {
	for _, seed := range b.seeds {
		pos := Mask(Hash(seed, key), b.size)
		if b.words[pos/bitsPerWord].Load()&(1<<(pos%bitsPerWord)) == 0 {
			return false
		}
	}
	return true
}

// setBit sets the bit at pos and reports whether it was already set.
func (b *Bloom) setBit(pos uint64) bool {
	w := &b.words[pos/bitsPerWord]
	mask := uint64(1) << (pos % bitsPerWord)
	for {
		old := w.Load()
		if old&mask != 0 {
			return true
		}
		if w.CompareAndSwap(old, old|mask) {
			return false
		}
	}
}

// Reset clears the filter. It must not race with Add.
func (b *Bloom) Reset() {
	for i := range b.words {
		b.words[i].Store(0)
	}
	b.added.Store(0)
}

// Stats returns the current fill and cardinality estimate.
func (b *Bloom) Stats() BloomStats {
	var set uint64
	for i := range b.words {
		set += uint64(bits.OnesCount64(b.words[i].Load()))
	}

	m := float64(b.size)
	k := float64(len(b.seeds))
	fill := float64(set) / m

	est := math.Inf(1)
	if set < b.size {
		est = -m / k * math.Log(1-fill)
	}

	return BloomStats{
		Bits:      b.size,
		Probes:    len(b.seeds),
		SetBits:   set,
		Added:     b.added.Load(),
		FillRatio: fill,
		Estimated: est,
	}
}
