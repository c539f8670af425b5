// Package connection is the client side of the Hoard protocol.
//
// Each call dials a new TCP connection, writes one request, half-closes the
// write side and reads the reply until the server closes.
package connection
