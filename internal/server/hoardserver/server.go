package hoardserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/yndnr/hoard-go/internal/telemetry/logger"
	"github.com/yndnr/hoard-go/internal/telemetry/metric"
)

// DefaultMaxRequestSize is the size of the single read per connection.
const DefaultMaxRequestSize = 1 << 20

// Config holds the server configuration.
type Config struct {
	// Address is the TCP listen address (default: localhost:8000).
	Address string
	// ReadTimeout bounds the wait for the request. Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds sending the reply. Zero disables it.
	WriteTimeout time.Duration
	// MaxRequestSize is the read buffer size; longer requests are truncated.
	MaxRequestSize int
	// MaxConnections caps concurrently served connections. 0 means unbounded.
	MaxConnections int
	// AcceptRate limits accepted connections per second. 0 means unlimited.
	AcceptRate float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:        "localhost:8000",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxRequestSize: DefaultMaxRequestSize,
	}
}

// Server accepts connections and answers one request on each.
type Server struct {
	cfg     *Config
	handler *Handler
	logger  *slog.Logger
	metrics *metric.Registry
	id      string

	sem     *semaphore.Weighted
	limiter *rate.Limiter
	bufs    sync.Pool

	mu      sync.Mutex
	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server dispatching to handler.
func New(cfg *Config, handler *Handler, metrics *metric.Registry, log *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = DefaultMaxRequestSize
	}
	if metrics == nil {
		metrics = metric.NewRegistry()
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		handler: handler,
		logger:  log,
		metrics: metrics,
		id:      uuid.NewString(),
	}
	if cfg.MaxConnections > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.MaxConnections))
	}
	if cfg.AcceptRate > 0 {
		burst := int(cfg.AcceptRate)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.AcceptRate), burst)
	}
	size := cfg.MaxRequestSize
	s.bufs.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return s
}

// ID returns the server instance ID.
func (s *Server) ID() string {
	return s.id
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ListenAndServe binds cfg.Address and serves until ctx is done or Shutdown
// is called. Bind and accept failures are returned.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln. It returns nil after a clean stop and the
// accept error otherwise.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.running.Store(true)
	s.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.running.Store(false)
			s.mu.Unlock()
			_ = ln.Close()
		case <-stop:
		}
	}()

	s.logger.Info("hoard server listening",
		"address", ln.Addr().String(),
		"server_id", s.id,
		"max_connections", s.cfg.MaxConnections,
	)
	return s.acceptLoop(ctx, ln)
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil
			}
		}
		if s.sem != nil {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return nil
			}
		}

		c, err := ln.Accept()
		if err != nil {
			s.release()
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		if !s.track() {
			_ = c.Close()
			s.release()
			return nil
		}
		s.metrics.ConnOpened()
		go func() {
			defer s.wg.Done()
			defer s.release()
			defer s.metrics.ConnClosed()
			s.serveConn(ctx, c)
		}()
	}
}

// track registers a connection with the wait group unless shutdown has begun.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}

// serveConn runs one request/response cycle and closes c.
func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	defer c.Close()

	connID := ulid.Make().String()
	ctx = logger.WithConnID(ctx, connID)
	log := s.logger.With("conn_id", connID, "remote", c.RemoteAddr().String())

	if s.cfg.ReadTimeout > 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return
		}
	}

	bp := s.bufs.Get().(*[]byte)
	defer s.bufs.Put(bp)
	buf := *bp

	n, err := c.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Debug("connection timed out")
			return
		}
		log.Debug("connection read error", "error", err)
		return
	}
	if n == len(buf) {
		log.Warn("request filled the read buffer and may be truncated", "limit", len(buf))
	}
	s.metrics.ObserveRequestBytes(n)

	reply := s.handler.Handle(ctx, buf[:n])

	if s.cfg.WriteTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return
		}
	}
	if _, err := io.WriteString(c, reply); err != nil {
		log.Debug("connection write error", "error", err)
	}
}

// Shutdown stops accepting and waits for in-flight connections or ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.mu.Lock()
	s.running.Store(false)
	if s.ln != nil {
		if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
