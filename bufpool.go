package mhash

import (
	"bytes"
	"sync"
)

// bufPool recycles encode buffers for reflective decomposition. Buffers that
// grew past maxRetain are dropped on the floor to avoid pinning large arrays.
type bufPool struct {
	pool      sync.Pool
	initial   int
	maxRetain int
}

func newBufPool(initial, maxRetain int) *bufPool {
	bp := &bufPool{initial: initial, maxRetain: maxRetain}
	bp.pool.New = func() any {
		return bytes.NewBuffer(make([]byte, 0, bp.initial))
	}
	return bp
}

func (bp *bufPool) get() *bytes.Buffer {
	b := bp.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func (bp *bufPool) put(b *bytes.Buffer) {
	if b.Cap() > bp.maxRetain {
		return
	}
	bp.pool.Put(b)
}
