package mhash

// Built-in Hashable shapes. Scalars feed their fixed-width encoding,
// variable-length values are length-prefixed, and variants lead with a tag.

type (
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	Uint uint
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	Int  int
	Bool bool
	F32  float32
	F64  float64
)

func (v U8) FeedInto(s Sink)   { PutUint8(s, uint8(v)) }
func (v U16) FeedInto(s Sink)  { PutUint16(s, uint16(v)) }
func (v U32) FeedInto(s Sink)  { PutUint32(s, uint32(v)) }
func (v U64) FeedInto(s Sink)  { PutUint64(s, uint64(v)) }
func (v I8) FeedInto(s Sink)   { PutInt8(s, int8(v)) }
func (v I16) FeedInto(s Sink)  { PutInt16(s, int16(v)) }
func (v I32) FeedInto(s Sink)  { PutInt32(s, int32(v)) }
func (v I64) FeedInto(s Sink)  { PutInt64(s, int64(v)) }
func (v Bool) FeedInto(s Sink) { PutBool(s, bool(v)) }
func (v F32) FeedInto(s Sink)  { PutFloat32(s, float32(v)) }
func (v F64) FeedInto(s Sink)  { PutFloat64(s, float64(v)) }

// Uint and Int are always fed as 8 bytes so the digest does not depend on
// the platform word size.
func (v Uint) FeedInto(s Sink) { PutUint64(s, uint64(v)) }
func (v Int) FeedInto(s Sink)  { PutInt64(s, int64(v)) }

// String is a length-prefixed UTF-8 (or arbitrary) byte string.
type String string

func (v String) FeedInto(s Sink) { PutString(s, string(v)) }

// Bytes is a length-prefixed byte slice. A nil and an empty slice hash alike.
type Bytes []byte

func (v Bytes) FeedInto(s Sink) { PutBytes(s, v) }

// Raw is fed verbatim with no length marker. Use it only for values whose
// length is fixed by their type (digests, UUIDs, addresses).
type Raw []byte

func (v Raw) FeedInto(s Sink) { s.Write(v) }

// Unit is the empty value: it feeds nothing.
type Unit struct{}

func (Unit) FeedInto(Sink) {}

// Ref stands in for a node of a cyclic structure. Graph-shaped types feed the
// Ref of an already visited node instead of recursing into it.
type Ref uint64

func (v Ref) FeedInto(s Sink) { PutUint64(s, uint64(v)) }

// Seq is a homogeneous variable-length sequence: element count, then each
// element in iteration order.
type Seq[T Hashable] []T

func (v Seq[T]) FeedInto(s Sink) {
	PutLen(s, len(v))
	for _, e := range v {
		e.FeedInto(s)
	}
}

// Tuple is a fixed-arity heterogeneous list. Its arity is part of the type,
// so no count is fed.
type Tuple []Hashable

func (v Tuple) FeedInto(s Sink) {
	for _, e := range v {
		e.FeedInto(s)
	}
}

// Field is one named member of a Record.
type Field struct {
	Name  string
	Value Hashable
}

// Record feeds its fields in declared order. Names document the layout but
// are not hashed; reordering fields changes the digest.
type Record []Field

func (v Record) FeedInto(s Sink) {
	for _, f := range v {
		f.Value.FeedInto(s)
	}
}

const (
	tagNone uint8 = 0
	tagSome uint8 = 1
)

// Optional holds zero or one value.
type Optional[T Hashable] struct {
	v  T
	ok bool
}

func Some[T Hashable](v T) Optional[T] { return Optional[T]{v: v, ok: true} }
func None[T Hashable]() Optional[T]    { return Optional[T]{} }

func (o Optional[T]) IsSome() bool { return o.ok }

// Get returns the held value and whether there is one.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

func (o Optional[T]) FeedInto(s Sink) {
	if !o.ok {
		PutUint8(s, tagNone)
		return
	}
	PutUint8(s, tagSome)
	o.v.FeedInto(s)
}

// Variant is a tagged union member: Tag identifies the active case and is fed
// before Value, so cases with identical payload bytes still diverge.
type Variant[T Hashable] struct {
	Tag   uint32
	Value T
}

func (v Variant[T]) FeedInto(s Sink) {
	PutTag(s, v.Tag)
	v.Value.FeedInto(s)
}
