package mhash

import (
	"encoding/binary"
	"io"
	"math"
)

// Sink receives a value's byte decomposition. Implementations follow the
// hash.Hash contract: Write never fails, so callers ignore its results.
// *Mixer and every Engine digest satisfy it.
type Sink interface {
	io.Writer
}

// Hashable is implemented by any type that can describe itself as an ordered
// sequence of bytes. The decomposition must be deterministic, must terminate,
// and must keep a fixed field order; it is part of the type's hashing contract.
type Hashable interface {
	FeedInto(s Sink)
}

// Func adapts an ordinary function into a Hashable.
type Func func(s Sink)

func (f Func) FeedInto(s Sink) { f(s) }

// All fixed-width encodings below are little-endian.

func PutUint8(s Sink, v uint8) {
	if bw, ok := s.(io.ByteWriter); ok {
		_ = bw.WriteByte(v)
		return
	}
	s.Write([]byte{v})
}

func PutUint16(s Sink, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	s.Write(buf[:])
}

func PutUint32(s Sink, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	s.Write(buf[:])
}

func PutUint64(s Sink, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	s.Write(buf[:])
}

// Signed integers are fed in two's complement form of the same width.
func PutInt8(s Sink, v int8)   { PutUint8(s, uint8(v)) }
func PutInt16(s Sink, v int16) { PutUint16(s, uint16(v)) }
func PutInt32(s Sink, v int32) { PutUint32(s, uint32(v)) }
func PutInt64(s Sink, v int64) { PutUint64(s, uint64(v)) }

// PutBool feeds a single byte, 1 for true.
func PutBool(s Sink, v bool) {
	var b uint8
	if v {
		b = 1
	}
	PutUint8(s, b)
}

// canonicalNaN64 is the quiet NaN every NaN payload folds into.
const canonicalNaN64 = 0x7ff8000000000001

// PutFloat64 feeds the IEEE-754 bits of v. Negative zero folds into zero and
// all NaNs fold into one pattern, so values that compare equal hash equal.
func PutFloat64(s Sink, v float64) {
	switch {
	case v == 0:
		PutUint64(s, 0)
	case math.IsNaN(v):
		PutUint64(s, canonicalNaN64)
	default:
		PutUint64(s, math.Float64bits(v))
	}
}

// PutFloat32 widens to float64 so F32(x) and F64(float64(x)) agree.
func PutFloat32(s Sink, v float32) { PutFloat64(s, float64(v)) }

// PutTag feeds a variant discriminant ahead of its payload.
func PutTag(s Sink, tag uint32) { PutUint32(s, tag) }

// PutLen feeds a length marker ahead of a variable-length payload.
func PutLen(s Sink, n int) { PutUint64(s, uint64(n)) }

// PutBytes feeds a length-prefixed byte slice.
func PutBytes(s Sink, p []byte) {
	PutLen(s, len(p))
	s.Write(p)
}

// PutString feeds a length-prefixed string without copying when the sink
// implements io.StringWriter.
func PutString(s Sink, v string) {
	PutLen(s, len(v))
	io.WriteString(s, v)
}
