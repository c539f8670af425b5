// Package config defines the hoard-server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation of addresses, limits and log settings
//   - load.go: loading through internal/infra/confloader
//
// Sources are merged with priority flag > env (HOARD_*) > file > default.
package config
