// Package bufpool provides a bounded reuse pool of fixed-size byte buffers.
//
// Unlike sync.Pool, the pool keeps a hard cap on the number of retained
// buffers and guarantees that every buffer it hands out has the length
// configured at allocation time. Changing the buffer size clears the pool,
// so a buffer sized under an old configuration is never re-issued.
package bufpool

import (
	"fmt"
	"sync"
)

// DefaultMaxPooled is the default maximum number of retained buffers.
const DefaultMaxPooled = 16

// Pool is a bounded LIFO pool of fixed-size byte buffers.
// All methods are safe for concurrent use; operations are O(1) and
// serialize on one pool-wide mutex.
type Pool struct {
	mu        sync.Mutex
	size      int
	maxPooled int
	free      [][]byte // LIFO stack
}

// New creates a pool handing out buffers of length size, retaining at most
// maxPooled returned buffers. maxPooled <= 0 selects DefaultMaxPooled.
func New(size, maxPooled int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bufpool: invalid buffer size %d", size)
	}
	if maxPooled <= 0 {
		maxPooled = DefaultMaxPooled
	}
	return &Pool{
		size:      size,
		maxPooled: maxPooled,
		free:      make([][]byte, 0, maxPooled),
	}, nil
}

// Rent returns a buffer of the pool's current size, reusing a pooled
// buffer when one is available.
func (p *Pool) Rent() []byte {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return buf
	}
	size := p.size
	p.mu.Unlock()

	return make([]byte, size)
}

// Return puts a buffer back for reuse. Buffers are discarded when the pool
// is full or when the buffer does not match the current size (it was
// allocated before a size change).
func (p *Pool) Return(buf []byte) {
	if buf == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cap(buf) != p.size || len(p.free) >= p.maxPooled {
		return
	}
	p.free = append(p.free, buf[:p.size])
}

// SetSize changes the buffer size and clears the pool, so buffers sized
// under the previous configuration are never re-issued.
func (p *Pool) SetSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("bufpool: invalid buffer size %d", size)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if size != p.size {
		p.size = size
		p.free = p.free[:0]
	}
	return nil
}

// Size returns the current buffer size.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Pooled returns the number of buffers currently retained.
func (p *Pool) Pooled() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
