// Package pool provides type-safe object pooling for the columnstore engine.
// It wraps sync.Pool with statistics and automatic reset, and exposes the
// shared byte-buffer pool used by array streaming and snapshot encoding.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is a generic object pool. Pointer types are recommended for T. The
// pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		allocated int64
		hits      int64
	}
}

// New creates a typed pool with a factory and an optional reset function
// applied before an object is returned to the pool.
func New[T any](factory func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return factory()
	}
	return p
}

// Get fetches an object from the pool, allocating when empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.hits, 1)
	return p.pool.Get().(T)
}

// Put resets and returns an object to the pool.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}

// Stats reports pool usage counters.
func (p *Pool[T]) Stats() (allocated, gets int64) {
	return atomic.LoadInt64(&p.stats.allocated), atomic.LoadInt64(&p.stats.hits)
}

// ioBufferSize covers one element stride of every array kind plus headroom
// for batched transfers.
const ioBufferSize = 64 * 1024

var byteBuffers = New(
	func() *[]byte {
		b := make([]byte, ioBufferSize)
		return &b
	},
	nil,
)

// GetBuffer borrows a reusable I/O buffer of at least 64 KiB.
func GetBuffer() *[]byte {
	return byteBuffers.Get()
}

// PutBuffer returns a buffer obtained from GetBuffer.
func PutBuffer(b *[]byte) {
	if b == nil || cap(*b) < ioBufferSize {
		return
	}
	*b = (*b)[:ioBufferSize]
	byteBuffers.Put(b)
}
