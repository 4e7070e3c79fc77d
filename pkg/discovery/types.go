package discovery

import (
	"errors"
	"time"
)

const (
	// ServiceTypeStream is the service type for stream (TCP) QOTD servers.
	ServiceTypeStream = "_qotd._tcp"

	// ServiceTypeDatagram is the service type for datagram (UDP) QOTD servers.
	ServiceTypeDatagram = "_qotd._udp"

	// Domain is the mDNS domain.
	Domain = "local"

	// MaxInstanceNameLen is the maximum DNS-SD instance name length.
	MaxInstanceNameLen = 63

	// BrowseTimeout is the default timeout for browse operations.
	BrowseTimeout = 10 * time.Second
)

// TXT record keys.
const (
	// TXTKeyVersion is the TXT format version key.
	TXTKeyVersion = "txtvers"

	// TXTKeyMaxLen is the quote length bound key (characters).
	TXTKeyMaxLen = "maxlen"

	// TXTKeyEncoding is the character encoding name key.
	TXTKeyEncoding = "encoding"
)

// TXTVersion is the current TXT format version.
const TXTVersion = "1"

var (
	// ErrMissingRequired indicates a required TXT record is missing.
	ErrMissingRequired = errors.New("missing required TXT record")

	// ErrInvalidMaxLen indicates the maxlen TXT record is not a positive
	// integer.
	ErrInvalidMaxLen = errors.New("invalid maxlen TXT record")
)

// ServerInfo describes one advertised QOTD endpoint.
type ServerInfo struct {
	// InstanceName is the DNS-SD instance name. Empty selects a
	// hostname-derived default.
	InstanceName string

	// Port is the endpoint port.
	Port uint16

	// MaxQuoteLength is the advertised quote length bound in characters.
	MaxQuoteLength int

	// Encoding is the advertised character encoding name.
	Encoding string
}

// Service is a QOTD server found by browsing.
type Service struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string

	MaxQuoteLength int
	Encoding       string
}
