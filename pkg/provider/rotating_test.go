package provider

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestRotatingSelectsByDayOfYear verifies the quote index follows the
// calendar day deterministically.
func TestRotatingSelectsByDayOfYear(t *testing.T) {
	quotes := []string{"one", "two", "three"}
	r, err := NewRotating(quotes)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "one"},
		{time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), "two"},
		{time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), "three"},
		{time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC), "one"}, // wraps
	}

	for _, tc := range cases {
		r.now = func() time.Time { return tc.date }
		got, err := r.GetQuote(context.Background(), nil)
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if got != tc.want {
			t.Errorf("GetQuote on %v = %q, want %q", tc.date, got, tc.want)
		}
	}
}

// TestRotatingSameDaySameQuote verifies repeated queries within one day
// return the same quote.
func TestRotatingSameDaySameQuote(t *testing.T) {
	r, err := NewRotating([]string{"one", "two"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	r.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	first, _ := r.GetQuote(context.Background(), nil)
	second, _ := r.GetQuote(context.Background(), nil)
	if first != second {
		t.Errorf("Same-day quotes differ: %q vs %q", first, second)
	}
}

// TestRotatingRejectsEmptyList verifies construction and replacement require
// at least one quote.
func TestRotatingRejectsEmptyList(t *testing.T) {
	if _, err := NewRotating(nil); err == nil {
		t.Error("NewRotating should reject an empty quote list")
	}

	r, err := NewRotating([]string{"one"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if err := r.SetQuotes(nil); err == nil {
		t.Error("SetQuotes should reject an empty quote list")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d after rejected replacement, want 1", r.Len())
	}
}

// TestRotatingCanceledContext verifies an already-canceled context fails the
// query.
func TestRotatingCanceledContext(t *testing.T) {
	r, err := NewRotating([]string{"one"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.GetQuote(ctx, nil); err == nil {
		t.Error("GetQuote should fail with a canceled context")
	}
}

// TestRotatingConcurrentAccess exercises queries racing a list replacement.
func TestRotatingConcurrentAccess(t *testing.T) {
	r, err := NewRotating([]string{"one", "two"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := r.GetQuote(context.Background(), nil); err != nil {
					t.Errorf("GetQuote failed: %v", err)
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if err := r.SetQuotes([]string{"three", "four", "five"}); err != nil {
			t.Fatalf("SetQuotes failed: %v", err)
		}
	}
	wg.Wait()
}
