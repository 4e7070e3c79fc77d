// Package interactive provides the interactive command-line interface
// for the QOTD client.
package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/qotd-protocol/qotd-go/pkg/transport"
)

// Console handles interactive mode for qotd-client.
type Console struct {
	client *transport.Client
	config transport.ClientConfig
	rl     *readline.Instance
}

// New creates a new interactive console around an existing client.
func New(client *transport.Client, config transport.ClientConfig) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "qotd> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		client: client,
		config: config,
		rl:     rl,
	}, nil
}

// Run starts the interactive command loop. It returns when the user exits.
func (c *Console) Run(ctx context.Context) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "get", "g":
			c.cmdGet(ctx)

		case "target", "t":
			c.cmdTarget(args)

		case "mode", "m":
			c.cmdMode(args)

		case "timeout":
			c.cmdTimeout(args)

		case "encoding", "enc":
			c.cmdEncoding(args)

		case "maxlen":
			c.cmdMaxLen(args)

		case "status", "s":
			c.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
QOTD Client Commands:
  get                - Fetch a quote from the current target
  target <host:port> - Change the server endpoint
  mode <name>        - Switch transport: stream or datagram
  timeout <duration> - Change the request timeout (e.g. 5s, 500ms)
  encoding <name>    - Change the character encoding
  maxlen <n>         - Change the quote length bound
  status             - Show the current settings
  help               - Show this help
  exit               - Quit`)
}

func (c *Console) cmdGet(ctx context.Context) {
	start := time.Now()
	quote, err := c.client.RequestQuote(ctx)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Request failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "%s\n(%s over %s in %v)\n",
		quote, c.config.Target, c.config.Mode, time.Since(start).Round(time.Millisecond))
}

func (c *Console) cmdTarget(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: target <host:port>")
		return
	}
	config := c.config
	config.Target = args[0]
	c.apply(config)
}

func (c *Console) cmdMode(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: mode <stream|datagram>")
		return
	}
	mode, err := transport.ParseMode(args[0])
	if err != nil || mode == transport.ModeBoth {
		fmt.Fprintf(c.rl.Stdout(), "Invalid mode %q: pick stream or datagram\n", args[0])
		return
	}
	config := c.config
	config.Mode = mode
	c.apply(config)
}

func (c *Console) cmdTimeout(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: timeout <duration>")
		return
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid duration %q: %v\n", args[0], err)
		return
	}
	config := c.config
	config.DefaultTimeout = d
	c.apply(config)
}

func (c *Console) cmdEncoding(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: encoding <name>")
		return
	}
	config := c.config
	config.Encoding = args[0]
	c.apply(config)
}

func (c *Console) cmdMaxLen(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: maxlen <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintf(c.rl.Stdout(), "Invalid length %q\n", args[0])
		return
	}
	config := c.config
	config.MaxQuoteLength = n
	c.apply(config)
}

func (c *Console) cmdStatus() {
	fmt.Fprintf(c.rl.Stdout(), "Target:   %s\n", c.config.Target)
	fmt.Fprintf(c.rl.Stdout(), "Mode:     %s\n", c.config.Mode)
	fmt.Fprintf(c.rl.Stdout(), "Timeout:  %v\n", c.config.DefaultTimeout)
	encoding := c.config.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}
	fmt.Fprintf(c.rl.Stdout(), "Encoding: %s\n", encoding)
	maxLen := c.config.MaxQuoteLength
	if maxLen <= 0 {
		maxLen = transport.DefaultMaxQuoteLength
	}
	fmt.Fprintf(c.rl.Stdout(), "Max len:  %d\n", maxLen)
}

// apply reconfigures the client, keeping the previous settings when the new
// ones are rejected.
func (c *Console) apply(config transport.ClientConfig) {
	if err := c.client.Apply(config); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Rejected: %v\n", err)
		return
	}
	c.config = config
}
