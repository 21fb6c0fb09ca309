// Package pool provides reusable scratch buffers for decompression.
package pool

import "sync"

const (
	ScratchDefaultSize  = 1024 * 64        // 64KiB
	ScratchMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// Buffer is a reusable byte slice.
type Buffer struct {
	B []byte
}

// NewBuffer creates an empty Buffer with the given capacity.
func NewBuffer(defaultSize int) *Buffer {
	return &Buffer{B: make([]byte, 0, defaultSize)}
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.B)
}

// Reset empties the buffer and keeps its memory.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Resize sets the length of the buffer to n, reallocating when the capacity
// is too small. The contents after a reallocation are zeroed.
func (b *Buffer) Resize(n int) []byte {
	if n < 0 {
		panic("pool: negative buffer size")
	}
	if cap(b.B) < n {
		b.B = make([]byte, n)
	}
	b.B = b.B[:n]

	return b.B
}

// BufferPool recycles Buffers, dropping any that grew past maxThreshold.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a pool of buffers with the given initial capacity.
// A maxThreshold of zero keeps buffers of any size.
func NewBufferPool(defaultSize, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty Buffer from the pool.
func (p *BufferPool) Get() *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	return b
}

// Put returns b to the pool.
func (p *BufferPool) Put(b *Buffer) {
	if b == nil {
		return
	}
	if p.maxThreshold > 0 && cap(b.B) > p.maxThreshold {
		return
	}

	b.Reset()
	p.pool.Put(b)
}

var scratchPool = NewBufferPool(ScratchDefaultSize, ScratchMaxThreshold)

// GetScratch retrieves a Buffer from the shared scratch pool.
func GetScratch() *Buffer {
	return scratchPool.Get()
}

// PutScratch returns a Buffer to the shared scratch pool.
func PutScratch(b *Buffer) {
	scratchPool.Put(b)
}
