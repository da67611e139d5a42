package mhash

// Hash is the seeded entry point: a fresh Mixer absorbs the 8 little-endian
// bytes of seed, then v's decomposition, and the accumulator is returned.
// It is a pure function of (seed, decomposition) and safe for concurrent use.
func Hash(seed uint64, v Hashable) uint64 {
	var m Mixer
	PutUint64(&m, seed)
	v.FeedInto(&m)
	return m.Finish()
}

// HashBytes is Hash(seed, Bytes(p)).
func HashBytes(seed uint64, p []byte) uint64 {
	var m Mixer
	PutUint64(&m, seed)
	PutBytes(&m, p)
	return m.Finish()
}

// HashString is Hash(seed, String(s)) without the conversion.
func HashString(seed uint64, s string) uint64 {
	var m Mixer
	PutUint64(&m, seed)
	PutString(&m, s)
	return m.Finish()
}

// HashUint64 is Hash(seed, U64(v)).
func HashUint64(seed uint64, v uint64) uint64 {
	var m Mixer
	PutUint64(&m, seed)
	PutUint64(&m, v)
	return m.Finish()
}

// Sum hashes any value. Hashable values, strings, byte slices, booleans,
// and every integer and float width decompose exactly as their wrapper types
// do (Sum(s, "x") == Hash(s, String("x"))). Other values go through
// Structured, which fails with ErrUnsupportedType for channels, funcs and
// the like. Floats nested inside such values keep the sign of zero; see
// Structured.
func Sum(seed uint64, v any) (uint64, error) {
	var m Mixer
	PutUint64(&m, seed)
	if err := feedAny(&m, v); err != nil {
		return 0, err
	}
	return m.Finish(), nil
}

// feedAny dispatches on the dynamic type of v.
func feedAny(s Sink, v any) error {
	switch k := v.(type) {
	case Hashable:
		k.FeedInto(s)
	case string:
		PutString(s, k)
	case []byte:
		PutBytes(s, k)
	case bool:
		PutBool(s, k)
	case int:
		PutInt64(s, int64(k))
	case int8:
		PutInt8(s, k)
	case int16:
		PutInt16(s, k)
	case int32:
		PutInt32(s, k)
	case int64:
		PutInt64(s, k)
	case uint:
		PutUint64(s, uint64(k))
	case uint8:
		PutUint8(s, k)
	case uint16:
		PutUint16(s, k)
	case uint32:
		PutUint32(s, k)
	case uint64:
		PutUint64(s, k)
	case float32:
		PutFloat32(s, k)
	case float64:
		PutFloat64(s, k)
	default:
		return feedStructured(s, v)
	}
	return nil
}

// Hasher binds a seed and an Engine for repeated hashing of one key type,
// the way a container would hold its index function.
type Hasher[K Hashable] struct {
	seed   uint64
	engine Engine
}

// NewHasher creates a Hasher. A nil engine selects Mix.
func NewHasher[K Hashable](seed uint64, e Engine) *Hasher[K] {
	if e == nil {
		e = Mix
	}
	return &Hasher[K]{seed: seed, engine: e}
}

// Hash64 returns the digest of key under the bound seed and engine.
func (h *Hasher[K]) Hash64(key K) uint64 {
	return HashWith(h.engine, h.seed, key)
}

func (h *Hasher[K]) Seed() uint64   { return h.seed }
func (h *Hasher[K]) Engine() Engine { return h.engine }
