package discovery

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser implements the Advertiser interface using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu sync.Mutex

	// Active services
	streamServer   *zeroconf.Server
	datagramServer *zeroconf.Server
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) (*MDNSAdvertiser, error) {
	return &MDNSAdvertiser{config: config}, nil
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// AdvertiseStream starts advertising the stream endpoint.
func (a *MDNSAdvertiser) AdvertiseStream(ctx context.Context, info *ServerInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.streamServer != nil {
		a.streamServer.Shutdown()
		a.streamServer = nil
	}

	server, err := a.register(info, ServiceTypeStream)
	if err != nil {
		return fmt.Errorf("failed to register stream service: %w", err)
	}
	a.streamServer = server
	return nil
}

// StopStream stops advertising the stream endpoint.
func (a *MDNSAdvertiser) StopStream() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.streamServer != nil {
		a.streamServer.Shutdown()
		a.streamServer = nil
	}
	return nil
}

// AdvertiseDatagram starts advertising the datagram endpoint.
func (a *MDNSAdvertiser) AdvertiseDatagram(ctx context.Context, info *ServerInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.datagramServer != nil {
		a.datagramServer.Shutdown()
		a.datagramServer = nil
	}

	server, err := a.register(info, ServiceTypeDatagram)
	if err != nil {
		return fmt.Errorf("failed to register datagram service: %w", err)
	}
	a.datagramServer = server
	return nil
}

// StopDatagram stops advertising the datagram endpoint.
func (a *MDNSAdvertiser) StopDatagram() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.datagramServer != nil {
		a.datagramServer.Shutdown()
		a.datagramServer = nil
	}
	return nil
}

// StopAll stops all advertisements.
func (a *MDNSAdvertiser) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.streamServer != nil {
		a.streamServer.Shutdown()
		a.streamServer = nil
	}
	if a.datagramServer != nil {
		a.datagramServer.Shutdown()
		a.datagramServer = nil
	}
}

// register performs the zeroconf registration for one service type.
// Caller holds mu.
func (a *MDNSAdvertiser) register(info *ServerInfo, serviceType string) (*zeroconf.Server, error) {
	instanceName := info.InstanceName
	if instanceName == "" {
		instanceName = defaultInstanceName()
	}
	if len(instanceName) > MaxInstanceNameLen {
		instanceName = instanceName[:MaxInstanceNameLen]
	}

	txtStrings := TXTRecordsToStrings(EncodeServerTXT(info))

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	return zeroconf.Register(
		instanceName,
		serviceType,
		Domain,
		int(info.Port),
		txtStrings,
		a.getInterfaces(),
		opts...,
	)
}

// defaultInstanceName derives the instance name from the hostname.
func defaultInstanceName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "QOTD"
	}
	return fmt.Sprintf("QOTD on %s", hostname)
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// MDNSBrowser finds QOTD servers using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	return &MDNSBrowser{config: config}, nil
}

// Browse searches for QOTD servers of the given service type
// (ServiceTypeStream or ServiceTypeDatagram). Services are aggregated by
// instance name; addresses seen on multiple interfaces are combined into a
// single entry. The result channel is closed when ctx ends.
func (b *MDNSBrowser) Browse(ctx context.Context, serviceType string) (<-chan *Service, error) {
	out := make(chan *Service)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(out)

		services := make(map[string]*Service)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				if svc == nil {
					continue
				}

				existing, found := services[svc.InstanceName]
				if found {
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
				} else {
					services[svc.InstanceName] = svc
					select {
					case out <- svc:
					case <-ctx.Done():
						return
					}
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				if existing, found := services[entry.Instance]; found {
					existing.Addresses = removeAddresses(existing.Addresses, entry)
					if len(existing.Addresses) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, serviceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindFirst returns the first QOTD server found for the given service type,
// or the context error if none appears in time.
func (b *MDNSBrowser) FindFirst(ctx context.Context, serviceType string) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, BrowseTimeout)
	defer cancel()

	results, err := b.Browse(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	select {
	case svc, ok := <-results:
		if !ok {
			return nil, ctx.Err()
		}
		return svc, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		if iface, err := net.InterfaceByName(b.config.Interface); err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

// entryToService converts a zeroconf entry, dropping entries whose TXT
// records do not parse.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	info, err := DecodeServerTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Service{
		InstanceName:   entry.Instance,
		Host:           entry.HostName,
		Port:           uint16(entry.Port),
		Addresses:      addrs,
		MaxQuoteLength: info.MaxQuoteLength,
		Encoding:       info.Encoding,
	}
}

// mergeAddresses adds new addresses to the existing list, avoiding
// duplicates.
func mergeAddresses(existing, new []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range new {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses removes the addresses carried by a zeroconf entry.
func removeAddresses(addresses []string, entry *zeroconf.ServiceEntry) []string {
	toRemove := make(map[string]bool)
	for _, ip := range entry.AddrIPv4 {
		toRemove[ip.String()] = true
	}
	for _, ip := range entry.AddrIPv6 {
		toRemove[ip.String()] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}

// Ensure MDNSAdvertiser implements Advertiser interface.
var _ Advertiser = (*MDNSAdvertiser)(nil)
