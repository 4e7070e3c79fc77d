package transport_test

import (
	"testing"

	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

// TestParseMode verifies mode name parsing including transport aliases.
func TestParseMode(t *testing.T) {
	cases := []struct {
		name string
		want transport.Mode
	}{
		{"stream", transport.ModeStream},
		{"tcp", transport.ModeStream},
		{"datagram", transport.ModeDatagram},
		{"udp", transport.ModeDatagram},
		{"both", transport.ModeBoth},
	}

	for _, tc := range cases {
		got, err := transport.ParseMode(tc.name)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}

	if _, err := transport.ParseMode("carrier-pigeon"); err == nil {
		t.Error("ParseMode should reject unknown mode names")
	}
}

// TestModeEnables verifies which transports each mode enables.
func TestModeEnables(t *testing.T) {
	cases := []struct {
		mode     transport.Mode
		stream   bool
		datagram bool
	}{
		{transport.ModeStream, true, false},
		{transport.ModeDatagram, false, true},
		{transport.ModeBoth, true, true},
	}

	for _, tc := range cases {
		if got := tc.mode.StreamEnabled(); got != tc.stream {
			t.Errorf("%v.StreamEnabled() = %v, want %v", tc.mode, got, tc.stream)
		}
		if got := tc.mode.DatagramEnabled(); got != tc.datagram {
			t.Errorf("%v.DatagramEnabled() = %v, want %v", tc.mode, got, tc.datagram)
		}
	}
}
