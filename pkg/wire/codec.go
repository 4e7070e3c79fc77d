package wire

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/qotd-protocol/qotd-go/pkg/log"
)

// Codec errors.
var (
	// ErrUnencodable indicates the quote contains a character the active
	// encoding cannot represent. The payload must not be sent.
	ErrUnencodable = errors.New("quote not representable in active encoding")

	// ErrInvalidText indicates the payload is not a valid byte sequence
	// in the active encoding.
	ErrInvalidText = errors.New("invalid text payload")
)

// Codec performs bounded text/bytes conversion in a fixed character
// encoding. Encoding into a full buffer truncates on a character boundary;
// unrepresentable characters reject the whole payload. Both conditions are
// reported to the diagnostic logger.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	encoding Encoding
	logger   log.Logger
}

// NewCodec creates a codec for the named encoding.
// Pass nil as logger to disable diagnostics.
func NewCodec(encodingName string, logger log.Logger) (*Codec, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Codec{encoding: enc, logger: logger}, nil
}

// EncodingName returns the normalized name of the active encoding.
func (c *Codec) EncodingName() string {
	return c.encoding.Name
}

// MaxEncodedLen returns the buffer capacity needed for quoteLen characters.
func (c *Codec) MaxEncodedLen(quoteLen int) int {
	return c.encoding.MaxEncodedLen(quoteLen)
}

// Encode writes text into buf in the active encoding and returns the byte
// count together with a truncation flag.
//
// Text too long for the buffer is truncated to the largest prefix that fits
// without splitting a multi-byte sequence; a truncation diagnostic is
// reported and the truncated count returned. Text containing a character
// the encoding cannot represent yields ErrUnencodable and the caller must
// skip sending.
func (c *Codec) Encode(text string, buf []byte) (int, bool, error) {
	enc := c.encoding.enc.NewEncoder()

	n, _, err := enc.Transform(buf, []byte(text), true)
	switch {
	case err == nil:
		return n, false, nil

	case errors.Is(err, transform.ErrShortDst):
		c.logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: fmt.Sprintf("quote truncated to %d bytes", n),
				Context: "encode",
			},
		})
		return n, true, nil

	default:
		c.logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: fmt.Sprintf("encoding %s: %v", c.encoding.Name, err),
				Context: "encode",
			},
		})
		return 0, false, fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
}

// Decode converts payload bytes back into text. An invalid byte sequence
// is reported as a diagnostic and returned as ErrInvalidText; the caller
// surfaces it as "no quote received".
func (c *Codec) Decode(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", c.invalid("empty payload")
	}

	dec := c.encoding.enc.NewDecoder()
	out, err := dec.Bytes(buf)
	if err != nil {
		return "", c.invalid(err.Error())
	}

	text := string(out)
	if !utf8.ValidString(text) {
		return "", c.invalid("malformed byte sequence")
	}

	// Decoders substitute U+FFFD for malformed input instead of failing.
	// A replacement character in the output is legitimate only when the
	// payload really carried one: re-encode and compare.
	if strings.ContainsRune(text, utf8.RuneError) && !c.roundTrips(text, buf) {
		return "", c.invalid("malformed byte sequence")
	}

	return text, nil
}

// roundTrips reports whether text encodes back to exactly payload.
func (c *Codec) roundTrips(text string, payload []byte) bool {
	data, err := c.encoding.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return false
	}
	return bytes.Equal(data, payload)
}

func (c *Codec) invalid(reason string) error {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: reason,
			Context: "decode",
		},
	})
	return fmt.Errorf("%w: %s", ErrInvalidText, reason)
}
