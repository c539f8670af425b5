package httpserver

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/yndnr/hoard-go/internal/infra/buildinfo"
	"github.com/yndnr/hoard-go/internal/telemetry/metric"
	"github.com/yndnr/hoard-go/pkg/cmap"
)

// StatsSource is the read side of the data store shown on /stats.
type StatsSource interface {
	Stats() []cmap.ShardStats
}

// RouterConfig holds the dependencies of the admin routes.
type RouterConfig struct {
	Store    StatsSource
	Metrics  *metric.Registry
	Logger   *slog.Logger
	ServerID string

	// Ready reports whether the TCP listener is serving. Nil means always ready.
	Ready *atomic.Bool
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	ServerID      string            `json:"server_id"`
	Entries       int               `json:"entries"`
	Shards        []cmap.ShardStats `json:"shards"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Build         buildinfo.Info    `json:"build"`
}

// NewRouter builds the admin handler with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	reg := cfg.Metrics
	if reg == nil {
		reg = metric.Global()
	}
	started := time.Now()

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", reg.Handler())

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil && !cfg.Ready.Load() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		shards := cfg.Store.Stats()
		total := 0
		for _, s := range shards {
			total += s.Count
		}
		writeJSON(w, http.StatusOK, StatsResponse{
			ServerID:      cfg.ServerID,
			Entries:       total,
			Shards:        shards,
			UptimeSeconds: time.Since(started).Seconds(),
			Build:         buildinfo.Get(),
		})
	})

	return Chain(mux, RequestID(), Recover(log), AccessLog(log))
}
