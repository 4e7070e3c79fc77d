package transport

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/qotd-protocol/qotd-go/pkg/bufpool"
	"github.com/qotd-protocol/qotd-go/pkg/log"
	"github.com/qotd-protocol/qotd-go/pkg/wire"
)

// Server defaults.
const (
	// DefaultPort is the IANA-assigned QOTD port.
	DefaultPort = 17

	// DefaultMaxQuoteLength is the default quote length bound in characters.
	DefaultMaxQuoteLength = 512

	// drainTimeout bounds the quiescence wait before sockets are swapped
	// or closed. Best-effort: a very slow exchange may straddle it.
	drainTimeout = 5 * time.Second

	// drainPollInterval is the in-flight counter polling period.
	drainPollInterval = 10 * time.Millisecond
)

// ServerState describes the listener engine lifecycle.
type ServerState uint8

const (
	// StateIdle means the server is constructed but not listening.
	StateIdle ServerState = 0
	// StateListening means at least one listener is bound and serving.
	StateListening ServerState = 1
	// StateDraining means the server is waiting out in-flight exchanges.
	StateDraining ServerState = 2
	// StateDisposed is terminal.
	StateDisposed ServerState = 3
)

// String returns the state name.
func (s ServerState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateListening:
		return "LISTENING"
	case StateDraining:
		return "DRAINING"
	case StateDisposed:
		return "DISPOSED"
	default:
		return "UNKNOWN"
	}
}

// ServerConfig configures a QOTD server.
type ServerConfig struct {
	// Provider supplies quote text per accepted request. Required.
	Provider QuoteProvider

	// Mode selects stream, datagram, or both.
	Mode Mode

	// StreamPort is the stream listener port. Zero selects DefaultPort,
	// -1 selects an ephemeral port.
	StreamPort int

	// DatagramPort is the datagram socket port, with the same semantics
	// as StreamPort.
	DatagramPort int

	// DualStack binds the IPv6 wildcard accepting both address families;
	// otherwise the IPv4 wildcard is used.
	DualStack bool

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
func (c ServerConfig) withDefaults() (ServerConfig, error) {
	if c.Provider == nil {
		return c, fmt.Errorf("Provider is required")
	}
	if !c.Mode.valid() {
		return c, fmt.Errorf("invalid mode %d", c.Mode)
	}
	if c.StreamPort == 0 {
		c.StreamPort = DefaultPort
	} else if c.StreamPort == -1 {
		c.StreamPort = 0 // ephemeral
	}
	if c.DatagramPort == 0 {
		c.DatagramPort = DefaultPort
	} else if c.DatagramPort == -1 {
		c.DatagramPort = 0
	}
	if c.StreamPort < 0 || c.StreamPort > 65535 {
		return c, fmt.Errorf("invalid stream port %d", c.StreamPort)
	}
	if c.DatagramPort < 0 || c.DatagramPort > 65535 {
		return c, fmt.Errorf("invalid datagram port %d", c.DatagramPort)
	}
	if c.MaxQuoteLength <= 0 {
		c.MaxQuoteLength = DefaultMaxQuoteLength
	}
	if c.MaxPooledBuffers <= 0 {
		c.MaxPooledBuffers = bufpool.DefaultMaxPooled
	}
	return c, nil
}

// serverGen is the configuration snapshot one exchange generation runs
// against. Handlers capture it at dispatch; in-flight exchanges keep their
// captured snapshot across a reconfiguration.
type serverGen struct {
	provider QuoteProvider
	codec    *wire.Codec
}

// Server is the QOTD listener engine: up to two independently toggleable
// listeners (stream, datagram) feeding the provider/encode/write pipeline.
type Server struct {
	host *Host

	// Start/Apply/Stop serialize on mu; per-exchange state does not touch it.
	mu     sync.Mutex
	config ServerConfig
	state  ServerState

	gen atomic.Pointer[serverGen]

	// A listener/socket reference exists iff its protocol is enabled by mode.
	streamListener net.Listener
	datagramConn   *net.UDPConn

	inFlight atomic.Int64
	draining atomic.Bool

	// wg tracks the accept/receive loops only. Handler goroutines are
	// tracked by inFlight and waited on with a bounded drain; a handler
	// stuck in a provider that ignores cancellation is abandoned rather
	// than allowed to block shutdown.
	wg sync.WaitGroup
}

// NewServer creates a new QOTD server. Configuration errors are fatal here.
func NewServer(config ServerConfig) (*Server, error) {
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

	s := &Server{
		host:   host,
		config: config,
		state:  StateIdle,
	}
	s.gen.Store(&serverGen{provider: config.Provider, codec: codec})
	return s, nil
}

// Start binds the listeners selected by the configured mode and begins
// serving.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisposed || s.state == StateDraining {
		return ErrDisposed
	}
	return s.rebindLocked()
}

// Apply reconfigures the server under traffic: the previous generation is
// quiesced (bounded, best-effort), both sockets are closed and rebound per
// the new mode, and the codec/pool are resized. Serialized with Start/Stop.
func (s *Server) Apply(config ServerConfig) error {
	config, err := config.withDefaults()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisposed || s.state == StateDraining {
		return ErrDisposed
	}

	if config.Logger == nil {
		config.Logger = s.config.Logger
	}
	codec, err := wire.NewCodec(config.Encoding, config.Logger)
	if err != nil {
		return err
	}

	s.config = config
	s.gen.Store(&serverGen{provider: config.Provider, codec: codec})
	if err := s.host.SetBufferSize(codec.MaxEncodedLen(config.MaxQuoteLength)); err != nil {
		return err
	}
	return s.rebindLocked()
}

// rebindLocked quiesces the previous generation and swaps both sockets
// per the current config. Caller holds mu.
func (s *Server) rebindLocked() error {
	s.waitQuiesce()

	// Datagram socket first, then the stream listener.
	if s.datagramConn != nil {
		s.datagramConn.Close()
		s.datagramConn = nil
	}
	if s.config.Mode.DatagramEnabled() {
		conn, err := listenDatagram(s.config.DatagramPort, s.config.DualStack)
		if err != nil {
			return fmt.Errorf("failed to bind datagram socket: %w", err)
		}
		s.datagramConn = conn
		s.wg.Add(1)
		go s.receiveLoop(conn)
	}

	if s.streamListener != nil {
		s.streamListener.Close()
		s.streamListener = nil
	}
	if s.config.Mode.StreamEnabled() {
		ln, err := listenStream(s.config.StreamPort, s.config.DualStack)
		if err != nil {
			if s.datagramConn != nil {
				s.datagramConn.Close()
				s.datagramConn = nil
			}
			return fmt.Errorf("failed to bind stream listener: %w", err)
		}
		s.streamListener = ln
		s.wg.Add(1)
		go s.acceptLoop(ln)
	}

	s.setStateLocked(StateListening, "rebind")
	return nil
}

// Stop drains in-flight exchanges (bounded), fires the disposal signal and
// closes both sockets. An exchange still running when the drain window
// elapses is abandoned; the disposal check in its handler keeps it from
// writing afterwards. Idempotent.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisposed {
		return nil
	}

	s.setStateLocked(StateDraining, "dispose")
	s.draining.Store(true)
	s.waitQuiesce()

	s.host.Dispose()

	if s.datagramConn != nil {
		s.datagramConn.Close()
		s.datagramConn = nil
	}
	if s.streamListener != nil {
		s.streamListener.Close()
		s.streamListener = nil
	}

	s.wg.Wait()
	s.setStateLocked(StateDisposed, "")
	return nil
}

// State returns the current lifecycle state.
func (s *Server) State() ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight returns the number of exchanges currently being handled.
func (s *Server) InFlight() int {
	return int(s.inFlight.Load())
}

// StreamAddr returns the stream listener address, or nil when the stream
// transport is disabled.
func (s *Server) StreamAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamListener == nil {
		return nil
	}
	return s.streamListener.Addr()
}

// DatagramAddr returns the datagram socket address, or nil when the
// datagram transport is disabled.
func (s *Server) DatagramAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.datagramConn == nil {
		return nil
	}
	return s.datagramConn.LocalAddr()
}

// waitQuiesce polls the in-flight counter until it reaches zero or the
// drain timeout elapses. Best-effort: a very slow exchange may straddle a
// reconfiguration boundary.
func (s *Server) waitQuiesce() {
	deadline := time.Now().Add(drainTimeout)
	for s.inFlight.Load() > 0 && time.Now().Before(deadline) {
		time.Sleep(drainPollInterval)
	}
}

func (s *Server) setStateLocked(state ServerState, reason string) {
	if s.state == state {
		return
	}
	old := s.state
	s.state = state
	s.host.Logger().Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryState,
		LocalRole: log.RoleServer,
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: state.String(),
			Reason:   reason,
		},
	})
}

// acceptLoop accepts stream connections until its listener is closed.
// One goroutine per accepted connection; the loop re-arms unconditionally.
func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			// Closed during shutdown or rebind: expected, suppressed.
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.draining.Load() {
				return
			}
			s.logError(log.TransportStream, "", "accept", err)
			continue
		}

		// Count the exchange before any suspension point.
		s.inFlight.Add(1)
		go s.handleStream(conn)
	}
}

// receiveLoop receives datagrams until its socket is closed. The next
// receive is armed immediately after dispatching the handler, not after it
// completes, so concurrent requests are accepted while earlier ones finish.
func (s *Server) receiveLoop(conn *net.UDPConn) {
	defer s.wg.Done()

	buf := s.host.Rent()
	defer s.host.Return(buf)

	for {
		// Request content is ignored; only the sender address matters.
		_, raddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.draining.Load() {
				return
			}
			s.logError(log.TransportDatagram, "", "receive", err)
			continue
		}

		s.inFlight.Add(1)
		go s.handleDatagram(conn, raddr)
	}
}

// handleStream serves one accepted connection: query provider, encode,
// write, close. Failures drop this exchange only.
func (s *Server) handleStream(conn net.Conn) {
	defer s.inFlight.Add(-1)
	defer conn.Close()

	// A request starting mid-drain is abandoned safely, no response sent.
	if s.draining.Load() {
		return
	}

	start := time.Now()
	exchangeID := uuid.New().String()
	remote := conn.RemoteAddr()
	gen := s.gen.Load()

	quote, err := gen.provider.GetQuote(s.host.Context(), remote)
	if err != nil {
		s.logError(log.TransportStream, exchangeID, "provider", err)
		return
	}

	buf := s.host.Rent()
	defer s.host.Return(buf)

	n, truncated, err := gen.codec.Encode(quote, buf)
	if err != nil {
		// Unencodable quote: diagnostic already reported, skip sending.
		return
	}

	// No write executes against a disposed host.
	if s.host.Disposed() {
		return
	}

	if _, err := conn.Write(buf[:n]); err != nil {
		if !errors.Is(err, net.ErrClosed) {
			s.logError(log.TransportStream, exchangeID, "write", err)
		}
		return
	}

	s.logExchange(log.TransportStream, exchangeID, remote, n, truncated, time.Since(start))
}

// handleDatagram serves one received datagram, replying to its sender.
// The shared socket stays bound; only stream connections are closed.
func (s *Server) handleDatagram(conn *net.UDPConn, raddr *net.UDPAddr) {
	defer s.inFlight.Add(-1)

	if s.draining.Load() {
		return
	}

	start := time.Now()
	exchangeID := uuid.New().String()
	gen := s.gen.Load()

	quote, err := gen.provider.GetQuote(s.host.Context(), raddr)
	if err != nil {
		s.logError(log.TransportDatagram, exchangeID, "provider", err)
		return
	}

	buf := s.host.Rent()
	defer s.host.Return(buf)

	n, truncated, err := gen.codec.Encode(quote, buf)
	if err != nil {
		return
	}

	if s.host.Disposed() {
		return
	}

	if _, err := conn.WriteToUDP(buf[:n], raddr); err != nil {
		if !errors.Is(err, net.ErrClosed) {
			s.logError(log.TransportDatagram, exchangeID, "write", err)
		}
		return
	}

	s.logExchange(log.TransportDatagram, exchangeID, raddr, n, truncated, time.Since(start))
}

func (s *Server) logError(transport log.Transport, exchangeID, context string, err error) {
	s.host.Logger().Log(log.Event{
		Timestamp:  time.Now(),
		ExchangeID: exchangeID,
		Transport:  transport,
		Category:   log.CategoryError,
		LocalRole:  log.RoleServer,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}

func (s *Server) logExchange(transport log.Transport, exchangeID string, remote net.Addr, bytes int, truncated bool, duration time.Duration) {
	s.host.Logger().Log(log.Event{
		Timestamp:  time.Now(),
		ExchangeID: exchangeID,
		Direction:  log.DirectionOut,
		Transport:  transport,
		Category:   log.CategoryExchange,
		LocalRole:  log.RoleServer,
		RemoteAddr: remote.String(),
		Exchange: &log.ExchangeEvent{
			Bytes:     bytes,
			Truncated: truncated,
			Duration:  duration,
		},
	})
}

// listenStream binds the stream wildcard listener: IPv6-any accepting both
// families when dualStack, else IPv4-any.
func listenStream(port int, dualStack bool) (net.Listener, error) {
	if dualStack {
		return net.Listen("tcp", fmt.Sprintf("[::]:%d", port))
	}
	return net.Listen("tcp4", fmt.Sprintf(":%d", port))
}

// listenDatagram binds the datagram wildcard socket with the same
// address-family selection as listenStream.
func listenDatagram(port int, dualStack bool) (*net.UDPConn, error) {
	if dualStack {
		return net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv6zero, Port: port})
	}
	return net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: port})
}
