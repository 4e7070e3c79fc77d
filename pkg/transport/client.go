package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/qotd-protocol/qotd-go/pkg/bufpool"
	"github.com/qotd-protocol/qotd-go/pkg/log"
	"github.com/qotd-protocol/qotd-go/pkg/wire"
)

// Client defaults.
const (
	// DefaultRequestTimeout applies when a request passes timeout zero.
	DefaultRequestTimeout = 30 * time.Second

	// socketOverhead pads socket buffer sizing beyond the encoded quote
	// capacity to cover transport headers.
	socketOverhead = 128
)

// ClientConfig configures a QOTD client.
type ClientConfig struct {
	// Target is the server endpoint ("host:port"). Required.
	Target string

	// Mode selects stream or datagram. ModeBoth is invalid for clients.
	Mode Mode

	// DefaultTimeout applies to requests that pass timeout zero
	// (default: DefaultRequestTimeout). Negative means wait indefinitely.
	DefaultTimeout time.Duration

	// Encoding is the character encoding name (default: "utf-8").
	Encoding string

	// MaxQuoteLength bounds quote length in characters
	// (default: DefaultMaxQuoteLength).
	MaxQuoteLength int

	// MaxPooledBuffers caps buffer retention
	// (default: bufpool.DefaultMaxPooled).
	MaxPooledBuffers int

	// Logger for diagnostics (optional).
	Logger log.Logger
}

// withDefaults validates the config and fills in defaults.
func (c ClientConfig) withDefaults() (ClientConfig, error) {
	if c.Target == "" {
		return c, fmt.Errorf("Target is required")
	}
	if _, _, err := net.SplitHostPort(c.Target); err != nil {
		return c, fmt.Errorf("invalid target %q: %w", c.Target, err)
	}
	if c.Mode != ModeStream && c.Mode != ModeDatagram {
		return c, fmt.Errorf("invalid client mode %q", c.Mode)
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultRequestTimeout
	}
	if c.MaxQuoteLength <= 0 {
		c.MaxQuoteLength = DefaultMaxQuoteLength
	}
	if c.MaxPooledBuffers <= 0 {
		c.MaxPooledBuffers = bufpool.DefaultMaxPooled
	}
	return c, nil
}

// clientGen is the configuration snapshot one request runs against.
// In-flight requests keep their captured snapshot across Apply.
type clientGen struct {
	config ClientConfig
	codec  *wire.Codec
}

// Client is the QOTD requester engine. Each request opens one fresh
// transport to the fixed target; no socket persists between requests.
type Client struct {
	host *Host

	mu  sync.Mutex // serializes Apply/Dispose
	gen atomic.Pointer[clientGen]

	inFlight atomic.Int64
	draining atomic.Bool
}

// NewClient creates a new QOTD client. Configuration errors are fatal here.
func NewClient(config ClientConfig) (*Client, error) {
	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	codec, err := wire.NewCodec(config.Encoding, config.Logger)
	if err != nil {
		return nil, err
	}

	host, err := NewHost(codec.MaxEncodedLen(config.MaxQuoteLength), config.MaxPooledBuffers, config.Logger)
	if err != nil {
		return nil, err
	}

	c := &Client{host: host}
	c.gen.Store(&clientGen{config: config, codec: codec})
	return c, nil
}

// Apply reconfigures the client for subsequent requests; requests already
// in flight keep their captured settings.
func (c *Client) Apply(config ClientConfig) error {
	config, err := config.withDefaults()
	if err != nil {
		return err
	}

	codec, err := wire.NewCodec(config.Encoding, config.Logger)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host.Disposed() {
		return ErrDisposed
	}

	c.gen.Store(&clientGen{config: config, codec: codec})
	return c.host.SetBufferSize(codec.MaxEncodedLen(config.MaxQuoteLength))
}

// Dispose drains in-flight requests (bounded) and fires the disposal
// signal. Idempotent.
func (c *Client) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host.Disposed() {
		return
	}

	c.draining.Store(true)
	deadline := time.Now().Add(drainTimeout)
	for c.inFlight.Load() > 0 && time.Now().Before(deadline) {
		time.Sleep(drainPollInterval)
	}
	c.host.Dispose()
}

// InFlight returns the number of requests currently outstanding.
func (c *Client) InFlight() int {
	return int(c.inFlight.Load())
}

// RequestQuote requests one quote using the default timeout.
func (c *Client) RequestQuote(ctx context.Context) (string, error) {
	return c.RequestQuoteTimeout(ctx, 0)
}

// RequestQuoteTimeout requests one quote from the configured target.
//
// A timeout of exactly zero means "use the configured default"; a negative
// timeout means "wait indefinitely". Timeout expiry and ctx cancellation
// forcibly close the transport, so a pending operation surfaces as the
// context error. Returns ErrInvalidResponse on an empty read or a payload
// the codec rejects, and ErrDisposed when invoked during or after Dispose.
func (c *Client) RequestQuoteTimeout(ctx context.Context, timeout time.Duration) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.draining.Load() || c.host.Disposed() {
		return "", ErrDisposed
	}

	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	// Re-check after counting: a request starting mid-drain is refused.
	if c.draining.Load() || c.host.Disposed() {
		return "", ErrDisposed
	}

	gen := c.gen.Load()
	if timeout == 0 {
		timeout = gen.config.DefaultTimeout
	}

	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	start := time.Now()
	exchangeID := uuid.New().String()

	var (
		text string
		n    int
		err  error
	)
	if gen.config.Mode == ModeDatagram {
		text, n, err = c.requestDatagram(ctx, gen)
	} else {
		text, n, err = c.requestStream(ctx, gen)
	}
	if err != nil {
		err = c.classify(ctx, err)
		c.logError(gen, exchangeID, err)
		return "", err
	}

	c.logExchange(gen, exchangeID, n, time.Since(start))
	return text, nil
}

// requestStream connects, reads one reply until EOF or buffer fill, and
// decodes it.
func (c *Client) requestStream(ctx context.Context, gen *clientGen) (string, int, error) {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", gen.config.Target)
	if err != nil {
		return "", 0, fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	// Timeout or cancellation forcibly closes the transport; the pending
	// read then surfaces as canceled.
	stop := closeOnDone(ctx, c.host.Done(), conn)
	defer stop()

	bufSize := gen.codec.MaxEncodedLen(gen.config.MaxQuoteLength)
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetReadBuffer(bufSize + socketOverhead)
		_ = tcp.SetWriteBuffer(bufSize + socketOverhead)
	}

	buf := c.host.Rent()
	defer c.host.Return(buf)

	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("read failed: %w", err)
		}
	}

	if total == 0 {
		return "", 0, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}

	text, err := c.decode(gen, buf[:total])
	return text, total, err
}

// requestDatagram binds an ephemeral socket of the target's address family,
// sends an empty request datagram, and receives replies until one arrives
// from the expected endpoint. Unconnected sockets may receive from anyone;
// foreign datagrams are discarded.
func (c *Client) requestDatagram(ctx context.Context, gen *clientGen) (string, int, error) {
	raddr, err := net.ResolveUDPAddr("udp", gen.config.Target)
	if err != nil {
		return "", 0, fmt.Errorf("resolve failed: %w", err)
	}

	family := "udp6"
	if raddr.IP.To4() != nil {
		family = "udp4"
	}

	conn, err := net.ListenUDP(family, nil)
	if err != nil {
		return "", 0, fmt.Errorf("bind failed: %w", err)
	}
	defer conn.Close()

	stop := closeOnDone(ctx, c.host.Done(), conn)
	defer stop()

	bufSize := gen.codec.MaxEncodedLen(gen.config.MaxQuoteLength)
	_ = conn.SetReadBuffer(bufSize + socketOverhead)
	_ = conn.SetWriteBuffer(bufSize + socketOverhead)

	// The request is a zero-length datagram; only its arrival matters.
	if _, err := conn.WriteToUDP([]byte{}, raddr); err != nil {
		return "", 0, fmt.Errorf("send failed: %w", err)
	}

	buf := c.host.Rent()
	defer c.host.Return(buf)

	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			return "", 0, fmt.Errorf("receive failed: %w", err)
		}
		if !from.IP.Equal(raddr.IP) || from.Port != raddr.Port {
			continue
		}
		if n == 0 {
			return "", 0, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
		}
		text, err := c.decode(gen, buf[:n])
		return text, n, err
	}
}

func (c *Client) decode(gen *clientGen, payload []byte) (string, error) {
	text, err := gen.codec.Decode(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return text, nil
}

// classify maps errors caused by a forced transport close back to their
// cause: the context error on timeout/cancellation, ErrDisposed on
// disposal.
func (c *Client) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if c.host.Disposed() {
		return ErrDisposed
	}
	return err
}

func (c *Client) logError(gen *clientGen, exchangeID string, err error) {
	c.host.Logger().Log(log.Event{
		Timestamp:  time.Now(),
		ExchangeID: exchangeID,
		Transport:  clientTransport(gen.config.Mode),
		Category:   log.CategoryError,
		LocalRole:  log.RoleClient,
		RemoteAddr: gen.config.Target,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: "request",
		},
	})
}

func (c *Client) logExchange(gen *clientGen, exchangeID string, chars int, duration time.Duration) {
	c.host.Logger().Log(log.Event{
		Timestamp:  time.Now(),
		ExchangeID: exchangeID,
		Direction:  log.DirectionIn,
		Transport:  clientTransport(gen.config.Mode),
		Category:   log.CategoryExchange,
		LocalRole:  log.RoleClient,
		RemoteAddr: gen.config.Target,
		Exchange: &log.ExchangeEvent{
			Bytes:    chars,
			Duration: duration,
		},
	})
}

func clientTransport(mode Mode) log.Transport {
	if mode == ModeDatagram {
		return log.TransportDatagram
	}
	return log.TransportStream
}

// closeOnDone force-closes conn when ctx or the disposal signal fires.
// The returned stop function releases the watcher.
func closeOnDone(ctx context.Context, disposed <-chan struct{}, conn net.Conn) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-disposed:
			conn.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}
