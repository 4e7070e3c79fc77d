package log

import (
	"time"
)

// Event represents a diagnostic event captured by a QOTD engine.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ExchangeID uniquely identifies the request/response exchange (UUID).
	// Empty for events not tied to a single exchange (e.g. listener state).
	ExchangeID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates payload flow.
	Direction Direction `cbor:"3,keyasint"`

	// Transport over which the event occurred.
	Transport Transport `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// LocalRole indicates whether this endpoint is the server or the client.
	LocalRole Role `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"8,keyasint,omitempty"`  // Engine lifecycle
	Exchange    *ExchangeEvent    `cbor:"9,keyasint,omitempty"`  // Completed exchange
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"` // Non-fatal errors
}

// Direction indicates the direction of payload flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming payload.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing payload.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Transport indicates which transport an event relates to.
type Transport uint8

const (
	// TransportNone marks events not tied to a transport.
	TransportNone Transport = 0
	// TransportStream is the connection-oriented transport (TCP).
	TransportStream Transport = 1
	// TransportDatagram is the connectionless transport (UDP).
	TransportDatagram Transport = 2
)

// String returns the transport name.
func (t Transport) String() string {
	switch t {
	case TransportNone:
		return "NONE"
	case TransportStream:
		return "STREAM"
	case TransportDatagram:
		return "DATAGRAM"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates an engine state change.
	CategoryState Category = 0
	// CategoryExchange indicates a completed request/response exchange.
	CategoryExchange Category = 1
	// CategoryError indicates a non-fatal error.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryExchange:
		return "EXCHANGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role indicates whether the local endpoint is the server or the client.
type Role uint8

const (
	// RoleServer indicates the listening side.
	RoleServer Role = 0
	// RoleClient indicates the requesting side.
	RoleClient Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleServer:
		return "SERVER"
	case RoleClient:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures engine lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ExchangeEvent captures a completed request/response exchange.
type ExchangeEvent struct {
	// Bytes is the payload size sent or received.
	Bytes int `cbor:"1,keyasint"`

	// Truncated indicates the quote was cut to fit the buffer capacity.
	Truncated bool `cbor:"2,keyasint,omitempty"`

	// Duration from request receipt to response write.
	// Stored as nanoseconds.
	Duration time.Duration `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures non-fatal errors at any layer.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
