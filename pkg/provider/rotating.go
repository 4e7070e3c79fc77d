package provider

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// Rotating serves one quote per calendar day, cycling deterministically
// through its quote list by day of year. Safe for concurrent use; the quote
// list can be swapped while the server is running.
type Rotating struct {
	mu     sync.RWMutex
	quotes []string

	now func() time.Time
}

// NewRotating creates a rotating provider over quotes, which must be
// non-empty.
func NewRotating(quotes []string) (*Rotating, error) {
	r := &Rotating{now: time.Now}
	if err := r.SetQuotes(quotes); err != nil {
		return nil, err
	}
	return r, nil
}

// GetQuote returns the quote for the current day. It never fails once
// constructed and ignores the remote address.
func (r *Rotating) GetQuote(ctx context.Context, remoteAddr net.Addr) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	day := r.now().YearDay() - 1
	return r.quotes[day%len(r.quotes)], nil
}

// SetQuotes replaces the quote list. The replacement must be non-empty;
// requests in flight finish against the list they captured.
func (r *Rotating) SetQuotes(quotes []string) error {
	if len(quotes) == 0 {
		return fmt.Errorf("quote list is empty")
	}

	copied := make([]string, len(quotes))
	copy(copied, quotes)

	r.mu.Lock()
	r.quotes = copied
	r.mu.Unlock()
	return nil
}

// Len returns the number of quotes in rotation.
func (r *Rotating) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}
