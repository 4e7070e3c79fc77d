// Command qotd-client fetches quotes of the day per RFC 865.
//
// By default it performs a single fetch and prints the quote. With -i it
// starts an interactive console for repeated fetches and on-the-fly
// reconfiguration. With -discover the target is found via mDNS instead of
// being given explicitly.
//
// Usage:
//
//	qotd-client [flags]
//
// Flags:
//
//	-target string       Server endpoint (default "127.0.0.1:17")
//	-mode string         Transport: stream or datagram (default "stream")
//	-timeout duration    Request timeout (default 30s)
//	-encoding string     Character encoding (default "utf-8")
//	-max-quote-length n  Quote length bound in characters (default 512)
//	-discover            Find a server via mDNS/DNS-SD
//	-i                   Interactive console
//
// Examples:
//
//	# One quote over TCP from a local server
//	qotd-client -target 127.0.0.1:1700
//
//	# One quote over UDP from a discovered server
//	qotd-client -discover -mode datagram
//
//	# Interactive session
//	qotd-client -target 10.0.0.5:17 -i
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/qotd-protocol/qotd-go/cmd/qotd-client/interactive"
	"github.com/qotd-protocol/qotd-go/pkg/discovery"
	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

var (
	target         string
	modeName       string
	timeout        time.Duration
	encoding       string
	maxQuoteLength int
	discover       bool
	interactiveUI  bool
)

func init() {
	flag.StringVar(&target, "target", "127.0.0.1:17", "Server endpoint")
	flag.StringVar(&modeName, "mode", "stream", "Transport: stream or datagram")
	flag.DurationVar(&timeout, "timeout", transport.DefaultRequestTimeout, "Request timeout")
	flag.StringVar(&encoding, "encoding", "utf-8", "Character encoding")
	flag.IntVar(&maxQuoteLength, "max-quote-length", transport.DefaultMaxQuoteLength, "Quote length bound in characters")
	flag.BoolVar(&discover, "discover", false, "Find a server via mDNS/DNS-SD")
	flag.BoolVar(&interactiveUI, "i", false, "Interactive console")
}

func main() {
	flag.Parse()

	mode, err := transport.ParseMode(modeName)
	if err != nil || mode == transport.ModeBoth {
		fmt.Fprintf(os.Stderr, "Invalid mode %q: pick stream or datagram\n", modeName)
		os.Exit(1)
	}

	if discover {
		found, err := discoverTarget(mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Discovery failed: %v\n", err)
			os.Exit(1)
		}
		target = found
		fmt.Fprintf(os.Stderr, "Discovered server at %s\n", target)
	}

	config := transport.ClientConfig{
		Target:         target,
		Mode:           mode,
		DefaultTimeout: timeout,
		Encoding:       encoding,
		MaxQuoteLength: maxQuoteLength,
	}

	client, err := transport.NewClient(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	defer client.Dispose()

	if interactiveUI {
		console, err := interactive.New(client, config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start console: %v\n", err)
			os.Exit(1)
		}
		console.Run(context.Background())
		return
	}

	quote, err := client.RequestQuote(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(quote)
}

// discoverTarget browses for a QOTD server matching the transport and
// returns its endpoint.
func discoverTarget(mode transport.Mode) (string, error) {
	browser, err := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
	if err != nil {
		return "", err
	}

	serviceType := discovery.ServiceTypeStream
	if mode == transport.ModeDatagram {
		serviceType = discovery.ServiceTypeDatagram
	}

	svc, err := browser.FindFirst(context.Background(), serviceType)
	if err != nil {
		return "", err
	}
	if len(svc.Addresses) == 0 {
		return "", fmt.Errorf("service %q has no addresses", svc.InstanceName)
	}
	return net.JoinHostPort(svc.Addresses[0], strconv.Itoa(int(svc.Port))), nil
}
