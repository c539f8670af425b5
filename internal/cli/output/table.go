package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Tabular is implemented by results that know how to lay themselves out.
type Tabular interface {
	Table() *Table
}

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats data as a table.
// Supports *Table, Tabular, map[string]any and []any; anything else is
// printed as a single VALUE cell.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	var t *Table
	switch d := data.(type) {
	case nil:
		return nil
	case *Table:
		t = d
	case Table:
		t = &d
	case Tabular:
		t = d.Table()
	case map[string]any:
		t = &Table{Headers: []string{"KEY", "VALUE"}}
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.AddRow(k, Cell(d[k]))
		}
	case []any:
		t = &Table{Headers: []string{"INDEX", "VALUE"}}
		for i, e := range d {
			t.AddRow(fmt.Sprint(i), Cell(e))
		}
	default:
		t = &Table{Headers: []string{"VALUE"}}
		t.AddRow(Cell(d))
	}
	return t.RenderWithOptions(w, f.NoHeaders)
}

// Cell renders one value for a table cell. Nested lists and maps are
// written as compact JSON.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(x))
	case []any, map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
