package transport

import "errors"

// Engine errors.
var (
	// ErrDisposed indicates the engine was disposed before or during the call.
	ErrDisposed = errors.New("engine is disposed")

	// ErrInvalidResponse indicates no usable quote was received: an empty
	// transport read or a payload the codec could not decode.
	ErrInvalidResponse = errors.New("invalid response")
)
