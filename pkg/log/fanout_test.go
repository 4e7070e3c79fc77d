package log_test

import (
	"sync"
	"testing"

	"github.com/qotd-protocol/qotd-go/pkg/log"
)

// captureLogger records events for inspection in tests.
type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(event log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureLogger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// TestFanoutAllSinks verifies an unrestricted sink receives every event.
func TestFanoutAllSinks(t *testing.T) {
	first := &captureLogger{}
	second := &captureLogger{}

	fan := log.NewFanout().Attach(first).Attach(second)
	fan.Log(log.Event{Category: log.CategoryState})
	fan.Log(log.Event{Category: log.CategoryError})

	if first.count() != 2 {
		t.Errorf("first sink: expected 2 events, got %d", first.count())
	}
	if second.count() != 2 {
		t.Errorf("second sink: expected 2 events, got %d", second.count())
	}
}

// TestFanoutCategoryRestriction verifies a restricted sink only receives
// events of its categories while unrestricted sinks still see everything.
func TestFanoutCategoryRestriction(t *testing.T) {
	all := &captureLogger{}
	errorsOnly := &captureLogger{}

	fan := log.NewFanout().
		Attach(all).
		Attach(errorsOnly, log.CategoryError)

	fan.Log(log.Event{Category: log.CategoryState})
	fan.Log(log.Event{Category: log.CategoryExchange})
	fan.Log(log.Event{Category: log.CategoryError})

	if all.count() != 3 {
		t.Errorf("unrestricted sink: expected 3 events, got %d", all.count())
	}
	if errorsOnly.count() != 1 {
		t.Errorf("error sink: expected 1 event, got %d", errorsOnly.count())
	}
	errorsOnly.mu.Lock()
	defer errorsOnly.mu.Unlock()
	if len(errorsOnly.events) == 1 && errorsOnly.events[0].Category != log.CategoryError {
		t.Errorf("error sink received category %v", errorsOnly.events[0].Category)
	}
}

// TestFanoutEmpty verifies logging to a Fanout without sinks is a no-op.
func TestFanoutEmpty(t *testing.T) {
	log.NewFanout().Log(log.Event{Category: log.CategoryState})
}
