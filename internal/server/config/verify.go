package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/hoard-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	return errors.Join(
		verifyServer(&cfg.Server),
		verifyLimits(&cfg.Limits),
		verifyStore(&cfg.Store),
		verifyAdmin(&cfg.Admin, cfg.Server.Addr),
		verifyLog(&cfg.Log),
	)
}

func verifyAddr(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q: %w", field, addr, err)
	}
	return nil
}

func verifyServer(s *ServerSection) error {
	var errs []error
	errs = append(errs, verifyAddr("server.addr", s.Addr))
	if s.ReadTimeout < 0 {
		errs = append(errs, errors.New("server.read_timeout must not be negative"))
	}
	if s.WriteTimeout < 0 {
		errs = append(errs, errors.New("server.write_timeout must not be negative"))
	}
	if s.MaxRequestSize < 1 {
		errs = append(errs, errors.New("server.max_request_size must be positive"))
	}
	if s.MaxConnections < 0 {
		errs = append(errs, errors.New("server.max_connections must not be negative"))
	}
	if s.AcceptRate < 0 {
		errs = append(errs, errors.New("server.accept_rate must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyLimits(l *LimitsSection) error {
	var errs []error
	if l.MaxKeyLength < 1 {
		errs = append(errs, errors.New("limits.max_key_length must be positive"))
	}
	if l.MaxValueLength < 1 {
		errs = append(errs, errors.New("limits.max_value_length must be positive"))
	}
	return errors.Join(errs...)
}

func verifyStore(s *StoreSection) error {
	if s.Shards < 1 || s.Shards&(s.Shards-1) != 0 {
		return fmt.Errorf("store.shards must be a power of two, got %d", s.Shards)
	}
	return nil
}

func verifyAdmin(a *AdminSection, serverAddr string) error {
	if !a.Enabled {
		return nil
	}
	if err := verifyAddr("admin.addr", a.Addr); err != nil {
		return err
	}
	if a.Addr == serverAddr {
		return fmt.Errorf("admin.addr %q conflicts with server.addr", a.Addr)
	}
	return nil
}

func verifyLog(l *LogSection) error {
	var errs []error
	if !logger.ValidLevel(l.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", l.Format))
	}
	return errors.Join(errs...)
}
