package mhash

import (
	"encoding/binary"
	"math/bits"
)

// Mixing constants. Both are odd with high bit density so multiplication
// spreads every input bit over the upper half of the register.
const (
	mixPrime1 = 0x9e3779b97f4a7c15 // per-byte spread
	mixPrime2 = 0x94d049bb133111eb // post-rotation scramble

	mixRotation = 27

	// digestSize is the number of bytes Sum appends.
	digestSize = 8
	// mixBlockSize: the mixer consumes one byte at a time.
	mixBlockSize = 1
)

// Mixer is the avalanche core: a one-byte history plus a 64-bit accumulator.
// All arithmetic wraps modulo 2^64.
//
// A Mixer is not safe for concurrent use. Every hash computation should own
// its own instance; the zero value is ready to use.
type Mixer struct {
	prev  byte
	state uint64
}

// NewMixer returns a zeroed Mixer.
func NewMixer() *Mixer {
	return &Mixer{}
}

// Feed mixes p into the state byte by byte. Feeding a stream in any number of
// chunks yields the same state as feeding its concatenation at once.
func (m *Mixer) Feed(p []byte) {
	prev, state := m.prev, m.state
	for _, b := range p {
		state ^= uint64(b^prev) * mixPrime1
		state = bits.RotateLeft64(state, mixRotation) * mixPrime2
		prev = b
	}
	m.prev, m.state = prev, state
}

// Finish returns the current digest. It does not modify the state, so the
// caller may keep feeding afterwards.
func (m *Mixer) Finish() uint64 {
	return m.state
}

// Write implements io.Writer. It never returns an error.
func (m *Mixer) Write(p []byte) (int, error) {
	m.Feed(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (m *Mixer) WriteByte(b byte) error {
	state := m.state ^ uint64(b^m.prev)*mixPrime1
	m.state = bits.RotateLeft64(state, mixRotation) * mixPrime2
	m.prev = b
	return nil
}

// WriteString implements io.StringWriter without copying s.
func (m *Mixer) WriteString(s string) (int, error) {
	prev, state := m.prev, m.state
	for i := 0; i < len(s); i++ {
		b := s[i]
		state ^= uint64(b^prev) * mixPrime1
		state = bits.RotateLeft64(state, mixRotation) * mixPrime2
		prev = b
	}
	m.prev, m.state = prev, state
	return len(s), nil
}

// Sum64 is Finish under the hash.Hash64 name.
func (m *Mixer) Sum64() uint64 { return m.state }

// Sum appends the big-endian digest to b, following hash/fnv.
func (m *Mixer) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, m.state)
}

// Reset returns the Mixer to its zero state.
func (m *Mixer) Reset() {
	m.prev = 0
	m.state = 0
}

func (m *Mixer) Size() int      { return digestSize }
func (m *Mixer) BlockSize() int { return mixBlockSize }
