package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/hoard-go/internal/core/service"
	"github.com/yndnr/hoard-go/internal/infra/buildinfo"
	"github.com/yndnr/hoard-go/internal/infra/confloader"
	"github.com/yndnr/hoard-go/internal/infra/shutdown"
	"github.com/yndnr/hoard-go/internal/server/config"
	"github.com/yndnr/hoard-go/internal/server/hoardserver"
	"github.com/yndnr/hoard-go/internal/server/httpserver"
	"github.com/yndnr/hoard-go/internal/storage/memory"
	"github.com/yndnr/hoard-go/internal/telemetry/logger"
	"github.com/yndnr/hoard-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, buildinfo.String(c.App.Name))
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "hoard-server",
		Usage:   "In-memory key-value server",
		Version: buildinfo.Get().Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"HOARD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "TCP listen address (overrides server.addr)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides log.level)",
			},
		},
		Action: run,
	}
}

// overrides maps explicitly given flags onto configuration keys.
func overrides(c *cli.Context) map[string]any {
	m := map[string]any{}
	if c.IsSet("addr") {
		m["server.addr"] = c.String("addr")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	return m
}

func run(c *cli.Context) error {
	configFile := c.String("config")
	flagOverrides := overrides(c)

	cfg, err := config.Load(configFile, flagOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	slogger := log.Slog()

	info := buildinfo.Get()
	log.Info("starting hoard-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile)

	store := memory.New(memory.WithShards(cfg.Store.Shards))
	svc := service.NewKVService(store, service.Limits{
		MaxKeyLength:   cfg.Limits.MaxKeyLength,
		MaxValueLength: cfg.Limits.MaxValueLength,
	})

	metrics := metric.NewRegistry()
	if err := metrics.Register(metric.NewStoreCollector(store)); err != nil {
		return fmt.Errorf("register store collector: %w", err)
	}

	srv := hoardserver.New(&hoardserver.Config{
		Address:        cfg.Server.Addr,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		MaxConnections: cfg.Server.MaxConnections,
		AcceptRate:     cfg.Server.AcceptRate,
	}, hoardserver.NewHandler(svc, metrics, slogger), metrics, slogger)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.Server.Addr, err)
	}

	sh := shutdown.NewHandler(shutdownTimeout)
	g, ctx := errgroup.WithContext(c.Context)
	var ready atomic.Bool

	// Hooks run in reverse order: the TCP server stops before the admin endpoint.
	if cfg.Admin.Enabled {
		admin, err := startAdmin(g, cfg, store, metrics, slogger, srv.ID(), &ready)
		if err != nil {
			_ = ln.Close()
			return err
		}
		sh.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin endpoint")
			return admin.Shutdown(ctx)
		})
	}

	if configFile != "" {
		w, err := watchConfig(configFile, flagOverrides, slogger)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			sh.OnShutdown(func(context.Context) error { return w.Stop() })
		}
	}

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down hoard server")
		ready.Store(false)
		return srv.Shutdown(ctx)
	})

	g.Go(func() error {
		ready.Store(true)
		return srv.Serve(ctx, ln)
	})
	g.Go(func() error {
		return sh.Wait(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

func startAdmin(g *errgroup.Group, cfg *config.ServerConfig, store *memory.Store, metrics *metric.Registry,
	log *slog.Logger, serverID string, ready *atomic.Bool) (*httpserver.Server, error) {
	ln, err := net.Listen("tcp", cfg.Admin.Addr)
	if err != nil {
		return nil, fmt.Errorf("bind admin %s: %w", cfg.Admin.Addr, err)
	}

	admin := httpserver.New(cfg.Admin.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
		Store:    store,
		Metrics:  metrics,
		Logger:   log,
		ServerID: serverID,
		Ready:    ready,
	}))

	g.Go(func() error {
		log.Info("admin endpoint listening", "addr", ln.Addr().String())
		if err := admin.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin endpoint: %w", err)
		}
		return nil
	})
	return admin, nil
}

// watchConfig reloads the file on change and applies the new log level.
// Other settings need a restart.
func watchConfig(path string, flagOverrides map[string]any, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, flagOverrides)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		if old := logger.GetLevel(); old != cfg.Log.Level {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "from", old, "to", cfg.Log.Level)
		}
	})
	w.StartAsync()
	return w, nil
}
