package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatRaw   Format = "raw"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatRaw, FormatJSON, FormatYAML, FormatTable}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want raw, json, yaml or table)", s)
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &RawFormatter{}
	}
}

// RawFormatter prints data with fmt, one item per line for slices of strings.
type RawFormatter struct{}

// Format writes data followed by a newline.
func (f *RawFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case []string:
		for _, s := range d {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case []byte:
		_, err := fmt.Fprintln(w, string(d))
		return err
	default:
		_, err := fmt.Fprintln(w, d)
		return err
	}
}
