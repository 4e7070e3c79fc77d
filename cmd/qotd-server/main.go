// Command qotd-server serves quotes of the day per RFC 865.
//
// This command demonstrates a complete QOTD deployment with:
//   - CLI argument parsing
//   - Configuration file support (YAML)
//   - Stream (TCP) and datagram (UDP) transports
//   - Fortune-style quote file rotation
//   - mDNS discovery advertising
//   - Hot reconfiguration on SIGHUP
//   - Structured console logging plus an optional CBOR event log
//
// Usage:
//
//	qotd-server [flags]
//
// Flags:
//
//	-config string       Configuration file path (YAML)
//	-mode string         Transports: stream, datagram, both (default "both")
//	-stream-port int     Stream port; -1 for ephemeral (default 17)
//	-datagram-port int   Datagram port; -1 for ephemeral (default 17)
//	-dual-stack          Also accept IPv6 (default true)
//	-quotes string       Fortune-style quote file ('%'-separated)
//	-quote string        Single fixed quote (overrides -quotes)
//	-encoding string     Character encoding (default "utf-8")
//	-max-quote-length n  Quote length bound in characters (default 512)
//	-mdns                Advertise via mDNS/DNS-SD
//	-instance string     mDNS instance name (hostname-derived if empty)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-log-file string     CBOR event log path
//
// Examples:
//
//	# Serve the built-in quotes on the IANA port over both transports
//	qotd-server
//
//	# Serve a fortune file over TCP only, on an unprivileged port
//	qotd-server -mode stream -stream-port 1700 -quotes /usr/share/quotes.txt
//
//	# Advertise on the local network and keep a CBOR event log
//	qotd-server -mdns -log-file /var/log/qotd.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/qotd-protocol/qotd-go/pkg/discovery"
	"github.com/qotd-protocol/qotd-go/pkg/log"
	"github.com/qotd-protocol/qotd-go/pkg/provider"
	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&config.Mode, "mode", "both", "Transports: stream, datagram, both")
	flag.IntVar(&config.StreamPort, "stream-port", transport.DefaultPort, "Stream port; -1 for ephemeral")
	flag.IntVar(&config.DatagramPort, "datagram-port", transport.DefaultPort, "Datagram port; -1 for ephemeral")
	flag.BoolVar(&config.DualStack, "dual-stack", true, "Also accept IPv6")
	flag.StringVar(&config.QuoteFile, "quotes", "", "Fortune-style quote file ('%'-separated)")
	flag.StringVar(&config.Quote, "quote", "", "Single fixed quote (overrides -quotes)")
	flag.StringVar(&config.Encoding, "encoding", "utf-8", "Character encoding")
	flag.IntVar(&config.MaxQuoteLength, "max-quote-length", transport.DefaultMaxQuoteLength, "Quote length bound in characters")
	flag.BoolVar(&config.MDNS, "mdns", false, "Advertise via mDNS/DNS-SD")
	flag.StringVar(&config.Instance, "instance", "", "mDNS instance name (hostname-derived if empty)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.LogFile, "log-file", "", "CBOR event log path")
}

func main() {
	flag.Parse()

	if config.ConfigFile != "" {
		if err := config.MergeFile(config.ConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration file: %v\n", err)
			os.Exit(1)
		}
	}

	console := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(config.LogLevel),
	}))

	logger, closeLog, err := buildEventLogger(console)
	if err != nil {
		console.Error("Failed to open event log", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	quotes, err := buildProvider()
	if err != nil {
		console.Error("Invalid quote source", "error", err)
		os.Exit(1)
	}

	serverConfig, err := config.ServerConfig(quotes, logger)
	if err != nil {
		console.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	server, err := transport.NewServer(serverConfig)
	if err != nil {
		console.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := server.Start(); err != nil {
		console.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
	logEndpoints(console, server)

	var manager *discovery.Manager
	if config.MDNS {
		advertiser, err := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
		if err != nil {
			console.Error("Failed to create mDNS advertiser", "error", err)
			os.Exit(1)
		}
		manager = discovery.NewManager(advertiser)
		if err := announce(manager, server); err != nil {
			console.Warn("Failed to advertise service", "error", err)
		}
	}

	// SIGHUP reloads the config file and reconfigures under traffic;
	// SIGINT/SIGTERM stop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigCh {
		if sig != syscall.SIGHUP {
			console.Info("Shutting down", "signal", sig.String())
			break
		}

		console.Info("Reloading configuration")
		if err := reload(server, logger); err != nil {
			console.Error("Reload failed, previous configuration stays active", "error", err)
			continue
		}
		logEndpoints(console, server)
		if manager != nil {
			if err := announce(manager, server); err != nil {
				console.Warn("Failed to re-advertise service", "error", err)
			}
		}
	}

	if manager != nil {
		manager.Stop()
	}
	if err := server.Stop(); err != nil {
		console.Error("Error stopping server", "error", err)
	}
}

// buildEventLogger assembles the diagnostic sink: console always, CBOR file
// log when configured.
func buildEventLogger(console *slog.Logger) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(console)
	if config.LogFile == "" {
		return adapter, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(config.LogFile)
	if err != nil {
		return nil, nil, err
	}

	// The file carries the full record, exchanges included; the console
	// keeps state changes and errors only.
	fan := log.NewFanout().
		Attach(fileLogger).
		Attach(adapter, log.CategoryState, log.CategoryError)
	return fan, func() { fileLogger.Close() }, nil
}

// buildProvider selects the quote source: fixed quote, quote file, or the
// built-in rotation.
func buildProvider() (transport.QuoteProvider, error) {
	if config.Quote != "" {
		return provider.NewRotating([]string{config.Quote})
	}
	if config.QuoteFile != "" {
		quotes, err := provider.LoadQuotes(config.QuoteFile)
		if err != nil {
			return nil, err
		}
		return provider.NewRotating(quotes)
	}
	return provider.NewRotating(builtinQuotes)
}

// reload re-reads the config file and applies the result to the running
// server. Flag-only deployments reload the flag values unchanged.
func reload(server *transport.Server, logger log.Logger) error {
	if config.ConfigFile != "" {
		if err := config.MergeFile(config.ConfigFile); err != nil {
			return err
		}
	}

	quotes, err := buildProvider()
	if err != nil {
		return err
	}
	serverConfig, err := config.ServerConfig(quotes, logger)
	if err != nil {
		return err
	}
	return server.Apply(serverConfig)
}

// announce advertises the currently bound endpoints, using the actual ports
// so ephemeral bindings advertise correctly.
func announce(manager *discovery.Manager, server *transport.Server) error {
	return manager.Announce(context.Background(),
		endpointInfo(server.StreamAddr()),
		endpointInfo(server.DatagramAddr()),
	)
}

// endpointInfo builds the advertisement for one bound endpoint, nil when the
// transport is disabled.
func endpointInfo(addr net.Addr) *discovery.ServerInfo {
	if addr == nil {
		return nil
	}
	_, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil
	}
	return &discovery.ServerInfo{
		InstanceName:   config.Instance,
		Port:           uint16(port),
		MaxQuoteLength: config.MaxQuoteLength,
		Encoding:       config.Encoding,
	}
}

func logEndpoints(console *slog.Logger, server *transport.Server) {
	if addr := server.StreamAddr(); addr != nil {
		console.Info("Serving quotes", "transport", "stream", "addr", addr.String())
	}
	if addr := server.DatagramAddr(); addr != nil {
		console.Info("Serving quotes", "transport", "datagram", "addr", addr.String())
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
