// Package transport implements the QOTD (RFC 865) transport engines.
//
// The protocol is deliberately minimal:
//   - Stream: the client connects, the server immediately writes the quote
//     bytes and closes; the client reads until EOF or buffer fill.
//   - Datagram: the client sends any datagram (may be empty) to the server
//     port; the server replies with one datagram containing the quote bytes.
//
// There are no other messages, headers, or framing.
//
// # Engines
//
// Server owns up to two independently toggleable listeners (stream and
// datagram) selected by Mode. Each accepted connection or received datagram
// becomes one exchange: query the QuoteProvider, encode into a pooled
// buffer, write, release. Failures are isolated per exchange and never
// stop the accept/receive loops.
//
// Client opens one fresh transport per request, applies timeout and
// cancellation by forcibly closing the transport, reads a single reply and
// decodes it.
//
// Both engines compose a shared Host that owns the buffer pool, the
// diagnostic logger, and the disposal signal. Disposal drains in-flight
// exchanges with a bounded best-effort wait; live reconfiguration (Apply)
// quiesces the previous generation the same way before swapping sockets.
package transport
