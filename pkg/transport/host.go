package transport

import (
	"context"
	"sync"

	"github.com/qotd-protocol/qotd-go/pkg/bufpool"
	"github.com/qotd-protocol/qotd-go/pkg/log"
)

// Host is the shared lifecycle base composed into both Server and Client
// (ownership, not inheritance). It owns the buffer pool, the diagnostic
// logger, and the disposal signal.
//
// The pool's buffer size tracks the maximum encoded quote length in effect;
// SetBufferSize clears the pool so undersized buffers never leak forward.
type Host struct {
	pool   *bufpool.Pool
	logger log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	disposeOnce sync.Once
}

// NewHost creates a host with a pool of bufferSize-byte buffers retaining
// at most maxPooled of them. Pass nil as logger to disable diagnostics.
func NewHost(bufferSize, maxPooled int, logger log.Logger) (*Host, error) {
	pool, err := bufpool.New(bufferSize, maxPooled)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Host{
		pool:   pool,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Rent takes a buffer from the pool.
func (h *Host) Rent() []byte {
	return h.pool.Rent()
}

// Return gives a buffer back to the pool.
func (h *Host) Return(buf []byte) {
	h.pool.Return(buf)
}

// SetBufferSize changes the pooled buffer size, clearing the pool.
func (h *Host) SetBufferSize(size int) error {
	return h.pool.SetSize(size)
}

// Logger returns the diagnostic sink. Never nil.
func (h *Host) Logger() log.Logger {
	return h.logger
}

// Context returns a context canceled when the host is disposed. Engines
// pass it to provider queries so disposal abandons pending work.
func (h *Host) Context() context.Context {
	return h.ctx
}

// Done returns the disposal signal.
func (h *Host) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Disposed reports whether Dispose has been called.
func (h *Host) Disposed() bool {
	select {
	case <-h.ctx.Done():
		return true
	default:
		return false
	}
}

// Dispose fires the disposal signal. Idempotent.
func (h *Host) Dispose() {
	h.disposeOnce.Do(h.cancel)
}
