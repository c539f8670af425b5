// Package service provides domain services for Hoard.
//
// Domain services contain the command semantics and define interfaces for
// their storage dependencies, allowing dependency injection and testing
// against the in-memory store or a fake.
//
// This package contains:
//
//   - KVService: GET, SET, DELETE, FLUSH, MGET and MSET semantics
//
// Services are stateless apart from their injected repository and are
// safe for concurrent use.
package service
