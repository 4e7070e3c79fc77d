package transport

import "fmt"

// Mode selects which transports an engine uses.
type Mode uint8

const (
	// ModeStream enables the connection-oriented transport (TCP) only.
	ModeStream Mode = 0
	// ModeDatagram enables the connectionless transport (UDP) only.
	ModeDatagram Mode = 1
	// ModeBoth enables both transports. Valid for servers only.
	ModeBoth Mode = 2
)

// ParseMode parses a mode name ("stream", "datagram", "both").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "stream", "tcp":
		return ModeStream, nil
	case "datagram", "udp":
		return ModeDatagram, nil
	case "both":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("invalid mode %q", s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeDatagram:
		return "datagram"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// StreamEnabled reports whether the stream transport is enabled.
func (m Mode) StreamEnabled() bool {
	return m == ModeStream || m == ModeBoth
}

// DatagramEnabled reports whether the datagram transport is enabled.
func (m Mode) DatagramEnabled() bool {
	return m == ModeDatagram || m == ModeBoth
}

func (m Mode) valid() bool {
	return m == ModeStream || m == ModeDatagram || m == ModeBoth
}
