package bufpool_test

import (
	"sync"
	"testing"

	"github.com/qotd-protocol/qotd-go/pkg/bufpool"
)

// TestPoolRentReturn verifies basic reuse: a returned buffer is handed out
// again before any new allocation.
func TestPoolRentReturn(t *testing.T) {
	pool, err := bufpool.New(512, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf := pool.Rent()
	if len(buf) != 512 {
		t.Fatalf("expected buffer length 512, got %d", len(buf))
	}

	buf[0] = 0xAB
	pool.Return(buf)

	again := pool.Rent()
	if &again[0] != &buf[0] {
		t.Error("expected LIFO reuse of the returned buffer")
	}
}

// TestPoolInvalidSize verifies construction and resize reject bad sizes.
func TestPoolInvalidSize(t *testing.T) {
	if _, err := bufpool.New(0, 4); err == nil {
		t.Error("expected error for zero buffer size")
	}

	pool, err := bufpool.New(64, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := pool.SetSize(-1); err == nil {
		t.Error("expected error for negative buffer size")
	}
}

// TestPoolBoundedRetention verifies the pool never retains more than the
// configured maximum.
func TestPoolBoundedRetention(t *testing.T) {
	pool, err := bufpool.New(64, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	bufs := make([][]byte, 5)
	for i := range bufs {
		bufs[i] = pool.Rent()
	}
	for _, b := range bufs {
		pool.Return(b)
	}

	if got := pool.Pooled(); got != 2 {
		t.Errorf("expected 2 pooled buffers, got %d", got)
	}
}

// TestPoolSizeChangeClearsPool verifies a buffer allocated before a size
// change is never re-issued.
func TestPoolSizeChangeClearsPool(t *testing.T) {
	pool, err := bufpool.New(64, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	old := pool.Rent()
	pool.Return(old)

	if err := pool.SetSize(128); err != nil {
		t.Fatalf("SetSize failed: %v", err)
	}
	if got := pool.Pooled(); got != 0 {
		t.Fatalf("expected pool cleared after size change, %d retained", got)
	}

	buf := pool.Rent()
	if len(buf) != 128 {
		t.Errorf("expected buffer length 128 after size change, got %d", len(buf))
	}

	// A stale buffer returned after the change must be discarded.
	pool.Return(old)
	if got := pool.Pooled(); got != 0 {
		t.Errorf("expected stale buffer discarded, %d retained", got)
	}
}

// TestPoolConcurrentCycles verifies n concurrent rent/return cycles never
// allocate more than n distinct buffers.
func TestPoolConcurrentCycles(t *testing.T) {
	const workers = 8

	pool, err := bufpool.New(256, workers)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	seen := make(map[*byte]struct{})
	var seenMu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf := pool.Rent()
				seenMu.Lock()
				seen[&buf[0]] = struct{}{}
				seenMu.Unlock()
				pool.Return(buf)
			}
		}()
	}
	wg.Wait()

	if len(seen) > workers {
		t.Errorf("expected at most %d distinct buffers, got %d", workers, len(seen))
	}
}
