package qotd_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/qotd-protocol/qotd-go/pkg/discovery"
	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

// TestE2E_StreamFixedQuote tests a full stream exchange: server with a fixed
// quote, engine client connecting, reading and decoding it.
func TestE2E_StreamFixedQuote(t *testing.T) {
	server := startServer(t, fixedProvider("Test Quote"), transport.ModeStream)
	defer server.Stop()

	client := newClient(t, server.StreamAddr(), transport.ModeStream)
	defer client.Dispose()

	quote, err := client.RequestQuote(context.Background())
	if err != nil {
		t.Fatalf("RequestQuote failed: %v", err)
	}
	if quote != "Test Quote" {
		t.Errorf("Received %q, want %q", quote, "Test Quote")
	}
}

// TestE2E_DatagramDelayedProvider tests a datagram exchange whose provider
// answers after a delay well inside the request timeout.
func TestE2E_DatagramDelayedProvider(t *testing.T) {
	delayed := transport.QuoteFunc(func(ctx context.Context, remoteAddr net.Addr) (string, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return "Patience pays.", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	server := startServer(t, delayed, transport.ModeDatagram)
	defer server.Stop()

	client := newClient(t, server.DatagramAddr(), transport.ModeDatagram)
	defer client.Dispose()

	quote, err := client.RequestQuoteTimeout(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("RequestQuoteTimeout failed: %v", err)
	}
	if quote != "Patience pays." {
		t.Errorf("Received %q, want %q", quote, "Patience pays.")
	}
}

// TestE2E_TimeoutCancelsPromptly tests that a request timeout far shorter
// than the provider delay surfaces the deadline error without waiting for
// the provider.
func TestE2E_TimeoutCancelsPromptly(t *testing.T) {
	slow := transport.QuoteFunc(func(ctx context.Context, remoteAddr net.Addr) (string, error) {
		select {
		case <-time.After(time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	server := startServer(t, slow, transport.ModeStream)
	defer server.Stop()

	client := newClient(t, server.StreamAddr(), transport.ModeStream)
	defer client.Dispose()

	start := time.Now()
	_, err := client.RequestQuoteTimeout(context.Background(), time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RequestQuoteTimeout = %v, want context.DeadlineExceeded", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Timed-out request took %v, want prompt cancellation", elapsed)
	}
}

// TestE2E_ReconfigureUnderTraffic tests switching the server from
// stream-only to datagram-only while a stream exchange is in flight: the
// pending exchange either completes or fails cleanly, and the new transport
// serves afterwards.
func TestE2E_ReconfigureUnderTraffic(t *testing.T) {
	slow := transport.QuoteFunc(func(ctx context.Context, remoteAddr net.Addr) (string, error) {
		select {
		case <-time.After(300 * time.Millisecond):
			return "Test Quote", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	server := startServer(t, slow, transport.ModeStream)
	defer server.Stop()

	client := newClient(t, server.StreamAddr(), transport.ModeStream)
	defer client.Dispose()

	type result struct {
		quote string
		err   error
	}
	pending := make(chan result, 1)
	go func() {
		quote, err := client.RequestQuoteTimeout(context.Background(), 5*time.Second)
		pending <- result{quote, err}
	}()

	// Let the exchange reach the provider, then swap transports.
	time.Sleep(100 * time.Millisecond)
	err := server.Apply(transport.ServerConfig{
		Provider:     fixedProvider("Test Quote"),
		Mode:         transport.ModeDatagram,
		StreamPort:   -1,
		DatagramPort: -1,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	select {
	case res := <-pending:
		// Either the drained exchange completes, or the closed listener
		// surfaces as a classified response/connection error. A timeout
		// would mean the request hung instead of failing cleanly.
		if errors.Is(res.err, context.DeadlineExceeded) {
			t.Fatalf("In-flight request timed out (%v) instead of completing or failing cleanly", res.err)
		}
		var netErr net.Error
		switch {
		case res.err == nil:
			if res.quote != "Test Quote" {
				t.Errorf("In-flight request returned %q, want %q", res.quote, "Test Quote")
			}
		case errors.Is(res.err, transport.ErrInvalidResponse):
			// Listener closed before the reply was written.
		case errors.As(res.err, &netErr):
			// Connection torn down by the transport swap.
		default:
			t.Errorf("In-flight request failed with %v, want delivery, ErrInvalidResponse or a connection error", res.err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("In-flight request neither completed nor failed")
	}

	datagramClient := newClient(t, server.DatagramAddr(), transport.ModeDatagram)
	defer datagramClient.Dispose()

	quote, err := datagramClient.RequestQuote(context.Background())
	if err != nil {
		t.Fatalf("RequestQuote over the new transport failed: %v", err)
	}
	if quote != "Test Quote" {
		t.Errorf("Received %q over the new transport, want %q", quote, "Test Quote")
	}
}

// TestE2E_Discovery tests that a client can find an advertised server via
// mDNS.
func TestE2E_Discovery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	advertiser, err := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{})
	if err != nil {
		t.Fatalf("Failed to create advertiser: %v", err)
	}
	defer advertiser.StopAll()

	info := &discovery.ServerInfo{
		InstanceName:   "qotd-e2e-test",
		Port:           1700,
		MaxQuoteLength: 512,
		Encoding:       "utf-8",
	}
	if err := advertiser.AdvertiseStream(ctx, info); err != nil {
		t.Fatalf("Failed to advertise: %v", err)
	}

	browser, err := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
	if err != nil {
		t.Fatalf("Failed to create browser: %v", err)
	}

	results, err := browser.Browse(ctx, discovery.ServiceTypeStream)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				t.Fatal("Browse ended without finding the advertised service")
			}
			if svc.InstanceName != info.InstanceName {
				continue
			}
			if svc.Port != info.Port {
				t.Errorf("Discovered port %d, want %d", svc.Port, info.Port)
			}
			if svc.MaxQuoteLength != info.MaxQuoteLength {
				t.Errorf("Discovered maxlen %d, want %d", svc.MaxQuoteLength, info.MaxQuoteLength)
			}
			return
		case <-ctx.Done():
			t.Fatal("Timed out waiting for the advertised service")
		}
	}
}

// startServer starts a server on ephemeral ports.
func startServer(t *testing.T, provider transport.QuoteProvider, mode transport.Mode) *transport.Server {
	t.Helper()

	server, err := transport.NewServer(transport.ServerConfig{
		Provider:     provider,
		Mode:         mode,
		StreamPort:   -1,
		DatagramPort: -1,
	})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}

// newClient creates a client pointed at a server's loopback endpoint.
func newClient(t *testing.T, addr net.Addr, mode transport.Mode) *transport.Client {
	t.Helper()

	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		t.Fatalf("Failed to split address %q: %v", addr, err)
	}

	client, err := transport.NewClient(transport.ClientConfig{
		Target: net.JoinHostPort("127.0.0.1", port),
		Mode:   mode,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

// fixedProvider returns a provider serving a constant quote.
func fixedProvider(quote string) transport.QuoteProvider {
	return transport.QuoteFunc(func(ctx context.Context, remoteAddr net.Addr) (string, error) {
		return quote, nil
	})
}
