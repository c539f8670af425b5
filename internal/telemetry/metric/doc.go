// Package metric provides Prometheus metrics for Hoard.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, connection and command metrics, HTTP handler
//   - collector.go: store collector reading entry counts at scrape time
//
// Metrics are exposed at /metrics on the admin endpoint.
package metric
