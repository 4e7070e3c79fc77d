// Package discovery implements mDNS/DNS-SD advertising and browsing for
// QOTD servers.
//
// A server advertises one service instance per enabled transport:
// "_qotd._tcp" for the stream listener and "_qotd._udp" for the datagram
// socket. TXT records carry the TXT format version, the quote length bound
// and the character encoding, so clients can size buffers before the first
// request.
package discovery
