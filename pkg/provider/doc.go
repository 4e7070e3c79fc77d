// Package provider contains quote providers for the QOTD server engine.
//
// The transport package only defines the QuoteProvider interface; this
// package supplies ready-made implementations, most notably the rotating
// daily provider backed by a fortune-style quote file.
package provider
