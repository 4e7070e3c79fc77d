package transport

import (
	"context"
	"net"
)

// QuoteProvider supplies the quote text for one accepted request.
//
// GetQuote is called once per exchange with the requester's address and a
// context bound to the server's disposal signal. It may resolve
// asynchronously and may fail; failure or cancellation means no response is
// sent for that request.
type QuoteProvider interface {
	GetQuote(ctx context.Context, remoteAddr net.Addr) (string, error)
}

// QuoteFunc adapts a function to the QuoteProvider interface.
type QuoteFunc func(ctx context.Context, remoteAddr net.Addr) (string, error)

// GetQuote calls f.
func (f QuoteFunc) GetQuote(ctx context.Context, remoteAddr net.Addr) (string, error) {
	return f(ctx, remoteAddr)
}
