package discovery

import (
	"context"
	"sync"
	"time"
)

// Advertiser provides mDNS service advertising capabilities.
type Advertiser interface {
	// AdvertiseStream starts advertising the stream (TCP) endpoint.
	// Re-advertising replaces the previous registration.
	AdvertiseStream(ctx context.Context, info *ServerInfo) error

	// StopStream stops advertising the stream endpoint.
	StopStream() error

	// AdvertiseDatagram starts advertising the datagram (UDP) endpoint.
	// Re-advertising replaces the previous registration.
	AdvertiseDatagram(ctx context.Context, info *ServerInfo) error

	// StopDatagram stops advertising the datagram endpoint.
	StopDatagram() error

	// StopAll stops all advertisements. Idempotent.
	StopAll()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// Manager keeps the advertised services aligned with the server's enabled
// transports. Announce is called on start and after each reconfiguration;
// endpoints no longer enabled are withdrawn.
type Manager struct {
	mu         sync.Mutex
	advertiser Advertiser
}

// NewManager creates a manager on top of an advertiser.
func NewManager(advertiser Advertiser) *Manager {
	return &Manager{advertiser: advertiser}
}

// Announce advertises the enabled endpoints and withdraws the disabled
// ones. stream and datagram may carry different ports; nil disables that
// transport.
func (m *Manager) Announce(ctx context.Context, stream, datagram *ServerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stream != nil {
		if err := m.advertiser.AdvertiseStream(ctx, stream); err != nil {
			return err
		}
	} else if err := m.advertiser.StopStream(); err != nil {
		return err
	}

	if datagram != nil {
		if err := m.advertiser.AdvertiseDatagram(ctx, datagram); err != nil {
			return err
		}
	} else if err := m.advertiser.StopDatagram(); err != nil {
		return err
	}

	return nil
}

// Stop withdraws all advertisements.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advertiser.StopAll()
}
