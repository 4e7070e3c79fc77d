// Package log provides structured diagnostic logging for the QOTD engine.
//
// Engines report every noteworthy occurrence — listener state changes,
// completed exchanges, truncations, non-fatal transport and provider
// failures — as an Event delivered to a Logger. Diagnostics are for
// observability only and never drive control flow.
//
// Several Logger implementations are provided:
//   - NoopLogger: discards all events
//   - SlogAdapter: bridges events to a log/slog logger
//   - FileLogger: appends events to a file as a CBOR stream
//   - Fanout: routes events to several sinks, optionally by category
package log
