package log_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/qotd-protocol/qotd-go/pkg/log"
)

// TestFileLoggerRoundTrip verifies events written by FileLogger can be
// read back from the CBOR stream.
func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(log.Event{
		Timestamp: time.Now().UTC(),
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			NewState: "LISTENING",
		},
	})
	logger.Log(log.Event{
		Timestamp: time.Now().UTC(),
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: "write failed",
			Context: "datagram reply",
		},
	})

	if got := logger.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	events, err := log.ReadEvents(f)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].StateChange == nil || events[0].StateChange.NewState != "LISTENING" {
		t.Errorf("first event mismatch: %+v", events[0])
	}
	if events[1].Error == nil || events[1].Error.Message != "write failed" {
		t.Errorf("second event mismatch: %+v", events[1])
	}
}

// TestFileLoggerCloseIdempotent verifies Close can be called multiple times
// and Log after Close is ignored.
func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Must not panic or write
	logger.Log(log.Event{Category: log.CategoryState})
}

// TestFileLoggerConcurrent verifies concurrent Log calls do not corrupt
// the stream.
func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				logger.Log(log.Event{
					Timestamp: time.Now(),
					Category:  log.CategoryExchange,
					Exchange:  &log.ExchangeEvent{Bytes: j},
				})
			}
		}()
	}
	wg.Wait()

	if got := logger.Count(); got != writers*perWriter {
		t.Errorf("Count = %d, want %d", got, writers*perWriter)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	events, err := log.ReadEvents(f)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(events) != writers*perWriter {
		t.Errorf("expected %d events, got %d", writers*perWriter, len(events))
	}
}
