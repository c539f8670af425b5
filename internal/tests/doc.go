// Package tests holds end-to-end tests that run the server, admin endpoint
// and client together in one process.
package tests
