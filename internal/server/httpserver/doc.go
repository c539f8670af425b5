// Package httpserver provides the optional admin HTTP endpoint.
//
// Routes:
//
//	GET /metrics   Prometheus exposition
//	GET /healthz   liveness
//	GET /readyz    readiness (503 until the TCP listener is up)
//	GET /stats     entry count, per-shard counts and build information
//
// Every response carries an X-Request-ID header; panics in handlers are
// turned into a 500 JSON body.
package httpserver
