package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Addr           string        `koanf:"addr"`
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		MaxRequestSize int           `koanf:"max_request_size"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoard.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/hoard.yaml"))
	if l.envPrefix != "TEST_" || l.FilePath() != "/etc/hoard.yaml" {
		t.Errorf("options not applied: prefix=%q file=%q", l.envPrefix, l.FilePath())
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"HOARD_SERVER_ADDR", "server.addr"},
		{"HOARD_SERVER_MAX_REQUEST_SIZE", "server.max_request_size"},
		{"HOARD_LOG_LEVEL", "log.level"},
		{"HOARD_STORE", "store"},
	}
	for _, tt := range tests {
		if got := EnvKey("HOARD_", tt.name); got != tt.want {
			t.Errorf("EnvKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeFile(t, `
server:
  addr: "0.0.0.0:9000"
  read_timeout: 5s
  max_request_size: 4096
log:
  level: debug
`)

	var cfg testConfig
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxRequestSize != 4096 {
		t.Errorf("MaxRequestSize = %d", cfg.Server.MaxRequestSize)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	var cfg testConfig
	if err := NewLoader(WithConfigFile("/nonexistent/hoard.yaml")).Load(&cfg); err == nil {
		t.Error("Load() with missing file should fail")
	}
}

func TestLoader_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "log:\n  level: warn\n")

	var cfg testConfig
	cfg.Server.Addr = "localhost:8000"
	cfg.Server.MaxRequestSize = 1 << 20

	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "localhost:8000" || cfg.Server.MaxRequestSize != 1<<20 {
		t.Errorf("defaults overwritten: %+v", cfg.Server)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("HOARD_SERVER_ADDR", "env:1")
	t.Setenv("HOARD_SERVER_MAX_REQUEST_SIZE", "2048")
	t.Setenv("HOARD_SERVER_READ_TIMEOUT", "1m")

	var cfg testConfig
	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "env:1" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxRequestSize != 2048 {
		t.Errorf("MaxRequestSize = %d", cfg.Server.MaxRequestSize)
	}
	if cfg.Server.ReadTimeout != time.Minute {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("KV_LOG_LEVEL", "error")

	var cfg testConfig
	if err := NewLoader(WithEnvPrefix("KV_")).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeFile(t, `
server:
  addr: "from-file:1"
log:
  level: debug
`)
	t.Setenv("HOARD_SERVER_ADDR", "from-env:2")
	t.Setenv("HOARD_LOG_LEVEL", "warn")

	l := NewLoader(
		WithConfigFile(path),
		WithOverrides(map[string]any{
			"log.level":   "error",
			"server.addr": nil,
		}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "from-env:2" {
		t.Errorf("Addr = %q, env should override file and nil override is ignored", cfg.Server.Addr)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, override should win", cfg.Log.Level)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"server.addr": "map:3"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.Addr != "map:3" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}

	found := false
	for _, k := range l.Keys() {
		if k == "server.addr" {
			found = true
		}
	}
	if !found {
		t.Errorf("Keys() = %v, want server.addr", l.Keys())
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}
