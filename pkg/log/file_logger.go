package log

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// FileLogger appends events to a file as a CBOR record stream readable by
// ReadEvents. Each record is flushed as it is written, so the file tails a
// running engine. Safe for concurrent use.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	w      *bufio.Writer
	count  int
	closed bool
}

// NewFileLogger opens path for appending, creating it when missing.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return &FileLogger{file: f, w: bufio.NewWriter(f)}, nil
}

// Log appends one event. Encoding and write failures are swallowed so
// logging never disturbs an exchange.
func (l *FileLogger) Log(event Event) {
	data, err := EncodeEvent(event)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if _, err := l.w.Write(data); err != nil {
		return
	}
	_ = l.w.Flush()
	l.count++
}

// Count returns the number of events written since the logger was opened.
func (l *FileLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close flushes and closes the file. Safe to call multiple times; Log
// after Close is silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
