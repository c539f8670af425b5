// Package command defines the hoard-cli commands using urfave/cli/v2.
//
//   - root.go: application, global flags, output selection
//   - kv.go: get, set, delete, flush, mget, mset, raw
//   - codec.go: encode, decode (offline)
//   - shell.go: interactive mode
//
// Values for set, mset and encode are read from typed flags or JSON; see
// value.go.
package command
