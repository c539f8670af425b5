// Package output renders hoard-cli results.
//
// Every formatter takes plain Go data (usually the result of
// value.Value.Interface) and writes it in one of the supported formats:
//
//   - raw: the wire token or reply text as-is
//   - json: indented JSON
//   - yaml: YAML via gopkg.in/yaml.v3
//   - table: aligned columns for multi-key results
package output
