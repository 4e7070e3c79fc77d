// Package wire converts quote text to and from payload bytes.
//
// The QOTD wire format is the raw encoded text of one quote — no framing,
// headers, or control messages exist. The codec is bounded: encoding into a
// fixed-size buffer truncates oversized quotes on a character boundary, and
// text the active encoding cannot represent is rejected rather than sent.
//
// Character encodings are provided by golang.org/x/text and selected by
// IANA name ("utf-8", "iso-8859-1", "utf-16le", ...). UTF-8 is the default.
package wire
