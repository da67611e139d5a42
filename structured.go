package mhash

import (
	"bytes"
	"errors"
	"sync"

	cbor "github.com/fxamacker/cbor/v2"
)

const (
	encodeBufInitial = 256
	encodeBufRetain  = 64 << 10
)

var (
	encodeBufs = newBufPool(encodeBufInitial, encodeBufRetain)

	detModeOnce sync.Once
	detMode     cbor.EncMode
	detModeErr  error
)

// deterministicMode returns the CBOR core deterministic encoding mode:
// shortest-form integers, sorted map keys, no indefinite lengths.
func deterministicMode() (cbor.EncMode, error) {
	detModeOnce.Do(func() {
		detMode, detModeErr = cbor.CoreDetEncOptions().EncMode()
	})
	return detMode, detModeErr
}

// Structured decomposes an arbitrary Go value through its deterministic CBOR
// encoding. Map iteration order does not leak into the digest.
//
// Structs encode as maps keyed by field name (or cbor tag) and their keys are
// sorted like any other map: reordering field declarations keeps the digest,
// renaming a field changes it. A struct that opts into `cbor:",toarray"`
// encodes as an array in declaration order instead, so names drop out and
// order counts.
//
// NaNs collapse to one encoding, but float zeros keep their sign, so a value
// holding -0.0 and one holding +0.0 digest differently here even though
// PutFloat64 (and Sum on a bare float) folds them together.
//
// The returned Hashable owns a copy of the encoding and can be hashed any
// number of times.
func Structured(v any) (Hashable, error) {
	buf := encodeBufs.get()
	defer encodeBufs.put(buf)

	if err := encodeStructured(buf, v); err != nil {
		return nil, err
	}
	return Bytes(append([]byte(nil), buf.Bytes()...)), nil
}

// feedStructured encodes v into a pooled buffer and feeds it to s as a
// length-prefixed payload.
func feedStructured(s Sink, v any) error {
	buf := encodeBufs.get()
	defer encodeBufs.put(buf)

	if err := encodeStructured(buf, v); err != nil {
		return err
	}
	PutBytes(s, buf.Bytes())
	return nil
}

func encodeStructured(buf *bytes.Buffer, v any) error {
	em, err := deterministicMode()
	if err != nil {
		return wrapError("encode", err)
	}
	if err := em.NewEncoder(buf).Encode(v); err != nil {
		var ute *cbor.UnsupportedTypeError
		if errors.As(err, &ute) {
			return newHashError("encode", v, errors.Join(ErrUnsupportedType, err))
		}
		return newHashError("encode", v, err)
	}
	return nil
}
