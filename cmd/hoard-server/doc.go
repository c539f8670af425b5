// Package main provides the entry point for hoard-server.
//
// hoard-server serves the Hoard key-value protocol over TCP: one
// whitespace-separated command per connection, one reply, then close.
// An optional HTTP admin listener exposes metrics, health and store stats.
//
// Usage:
//
//	hoard-server [flags]
//	hoard-server --config /etc/hoard/hoard.yaml --addr 0.0.0.0:8000
package main
