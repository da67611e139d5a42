package mhash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Engine produces fresh streaming digests. Every engine runs the same
// seed-then-value protocol, so Hashable types work unchanged across them.
type Engine interface {
	Name() string
	New() hash.Hash64
}

type engine struct {
	name string
	new  func() hash.Hash64
}

func (e *engine) Name() string     { return e.name }
func (e *engine) New() hash.Hash64 { return e.new() }
func (e *engine) String() string   { return e.name }

var (
	// Mix is the avalanche Mixer and the default engine.
	Mix     Engine = &engine{name: "mix", new: func() hash.Hash64 { return NewMixer() }}
	// FNV is FNV-1a with an XOR-folded output.
	FNV     Engine = &engine{name: "fnv", new: func() hash.Hash64 { return newFNV64a() }}
	// XXHash is xxHash64.
	XXHash  Engine = &engine{name: "xxhash", new: func() hash.Hash64 { return xxhash.New() }}
	// XXH3 is the 64-bit XXH3 variant.
	XXH3    Engine = &engine{name: "xxh3", new: func() hash.Hash64 { return xxh3.New() }}
	// Murmur3 is the first 64 bits of MurmurHash3 x64_128.
	Murmur3 Engine = &engine{name: "murmur3", new: func() hash.Hash64 { return murmur3.New64() }}
	// Blake3 is BLAKE3 truncated to its first 8 output bytes. It is far slower
	// than the others and only worth it when inputs may be adversarial.
	Blake3  Engine = &engine{name: "blake3", new: func() hash.Hash64 { return blake3Digest{blake3.New()} }}
)

var engines = map[string]Engine{
	Mix.Name():     Mix,
	FNV.Name():     FNV,
	XXHash.Name():  XXHash,
	XXH3.Name():    XXH3,
	Murmur3.Name(): Murmur3,
	Blake3.Name():  Blake3,
}

// EngineByName resolves a registered engine name (see EngineNames).
func EngineByName(name string) (Engine, error) {
	if e, ok := engines[name]; ok {
		return e, nil
	}
	return nil, wrapError("engine", fmt.Errorf("%w: %q", ErrUnknownEngine, name))
}

// EngineNames lists registered engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashWith runs the seeded protocol through e. HashWith(Mix, s, v) equals
// Hash(s, v).
func HashWith(e Engine, seed uint64, v Hashable) uint64 {
	d := e.New()
	PutUint64(d, seed)
	v.FeedInto(d)
	return d.Sum64()
}

// SumWith is Sum through e.
func SumWith(e Engine, seed uint64, v any) (uint64, error) {
	d := e.New()
	PutUint64(d, seed)
	if err := feedAny(d, v); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// blake3Digest narrows the BLAKE3 extendable output to a 64-bit digest read
// little-endian from its first 8 bytes.
type blake3Digest struct {
	*blake3.Hasher
}

func (d blake3Digest) Sum64() uint64 {
	var buf [8]byte
	_, _ = d.Digest().Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func (d blake3Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

func (d blake3Digest) Size() int { return digestSize }
