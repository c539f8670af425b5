// Package hoardserver implements the Hoard text protocol over TCP.
//
// Every accepted connection carries exactly one request and one response:
//
//	client -> server:  <COMMAND> [arg ...]
//	server -> client:  <reply>            (no terminator, then close)
//
// The request is whatever a single bounded read returns; there is no
// framing, so a request larger than the read buffer is truncated.
//
// Supported commands: GET, SET, DELETE, FLUSH, MGET, MSET. Values travel in
// the whitespace-free encoding of package value.
package hoardserver
