package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qotd-protocol/qotd-go/pkg/log"
	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

// Config holds the server configuration, populated from flags and
// optionally overridden by a YAML file.
type Config struct {
	ConfigFile string `yaml:"-"`

	Mode         string `yaml:"mode"`
	StreamPort   int    `yaml:"stream_port"`
	DatagramPort int    `yaml:"datagram_port"`
	DualStack    bool   `yaml:"dual_stack"`

	QuoteFile string `yaml:"quote_file"`
	Quote     string `yaml:"quote"`

	Encoding       string `yaml:"encoding"`
	MaxQuoteLength int    `yaml:"max_quote_length"`

	MDNS     bool   `yaml:"mdns"`
	Instance string `yaml:"instance"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// MergeFile overlays settings from a YAML file. Keys present in the file
// take precedence over flag values; absent keys keep theirs.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return nil
}

// ServerConfig translates the command configuration into an engine
// configuration.
func (c *Config) ServerConfig(provider transport.QuoteProvider, logger log.Logger) (transport.ServerConfig, error) {
	mode, err := transport.ParseMode(c.Mode)
	if err != nil {
		return transport.ServerConfig{}, err
	}

	return transport.ServerConfig{
		Provider:       provider,
		Mode:           mode,
		StreamPort:     c.StreamPort,
		DatagramPort:   c.DatagramPort,
		DualStack:      c.DualStack,
		Encoding:       c.Encoding,
		MaxQuoteLength: c.MaxQuoteLength,
		Logger:         logger,
	}, nil
}
