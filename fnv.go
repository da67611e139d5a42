package mhash

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// fnv64a is a streaming FNV-1a digest with an XOR-fold on output.
//
// Standard FNV-1a: start from the offset basis, then for every byte XOR it
// into the state and multiply by the FNV prime. The fold h ^ (h >> 32) mixes
// the upper half into the low bits, which is what mask-based reductions read.
type fnv64a struct {
	h uint64
}

func newFNV64a() *fnv64a {
	return &fnv64a{h: fnvOffset64}
}

func (f *fnv64a) Write(p []byte) (int, error) {
	h := f.h
	for _, b := range p {
		h ^= uint64(b)
		h *= fnvPrime64
	}
	f.h = h
	return len(p), nil
}

func (f *fnv64a) Sum64() uint64 {
	return f.h ^ (f.h >> 32)
}

func (f *fnv64a) Sum(b []byte) []byte {
	v := f.Sum64()
	return append(b, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (f *fnv64a) Reset()         { f.h = fnvOffset64 }
func (f *fnv64a) Size() int      { return 8 }
func (f *fnv64a) BlockSize() int { return 1 }
