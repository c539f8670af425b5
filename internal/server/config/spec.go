package config

import "time"

// ServerConfig is the root configuration for hoard-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Limits LimitsSection `koanf:"limits"`
	Store  StoreSection  `koanf:"store"`
	Admin  AdminSection  `koanf:"admin"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures the TCP listener.
type ServerSection struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// MaxRequestSize is the single read per connection; longer requests are truncated.
	MaxRequestSize int `koanf:"max_request_size"`

	// MaxConnections caps concurrently served connections. 0 = unbounded.
	MaxConnections int `koanf:"max_connections"`

	// AcceptRate is accepted connections per second. 0 = unlimited.
	AcceptRate float64 `koanf:"accept_rate"`
}

// LimitsSection configures protocol-visible size limits.
type LimitsSection struct {
	MaxKeyLength   int `koanf:"max_key_length"`
	MaxValueLength int `koanf:"max_value_length"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// Shards must be a power of two.
	Shards int `koanf:"shards"`
}

// AdminSection configures the HTTP admin endpoint.
type AdminSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
