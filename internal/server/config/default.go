package config

import "time"

// Default configuration values.
const (
	DefaultAddr           = "localhost:8000"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1 << 20

	DefaultMaxKeyLength   = 1024
	DefaultMaxValueLength = 1 << 20

	DefaultShards = 16

	DefaultAdminAddr = "127.0.0.1:8080"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:           DefaultAddr,
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			MaxRequestSize: DefaultMaxRequestSize,
		},
		Limits: LimitsSection{
			MaxKeyLength:   DefaultMaxKeyLength,
			MaxValueLength: DefaultMaxValueLength,
		},
		Store: StoreSection{
			Shards: DefaultShards,
		},
		Admin: AdminSection{
			Addr: DefaultAdminAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
