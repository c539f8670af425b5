package command

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/pkg/value"
)

// valueFlags are the mutually exclusive ways of giving a value.
func valueFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "json", Aliases: []string{"j"}, Usage: "Value as JSON"},
		&cli.Int64Flag{Name: "int", Usage: "Integer value"},
		&cli.Float64Flag{Name: "float", Usage: "Float value"},
		&cli.StringFlag{Name: "text", Usage: "Text value"},
		&cli.StringFlag{Name: "bytes", Usage: "Bytes value, standard base64"},
		&cli.BoolFlag{Name: "null", Usage: "Null value"},
	}
}

var valueFlagNames = []string{"json", "int", "float", "text", "bytes", "null"}

// valueFromFlags builds the value selected by exactly one value flag.
func valueFromFlags(c *cli.Context) (value.Value, error) {
	var set []string
	for _, name := range valueFlagNames {
		if c.IsSet(name) {
			set = append(set, name)
		}
	}
	switch len(set) {
	case 0:
		return value.Value{}, errors.New("a value is required: use one of --json, --int, --float, --text, --bytes, --null")
	case 1:
	default:
		return value.Value{}, fmt.Errorf("only one value flag may be given, got %v", set)
	}

	switch set[0] {
	case "json":
		return parseJSON(c.String("json"))
	case "int":
		return value.Int(c.Int64("int")), nil
	case "float":
		return value.Float(c.Float64("float")), nil
	case "text":
		return value.Text(c.String("text")), nil
	case "bytes":
		b, err := base64.StdEncoding.DecodeString(c.String("bytes"))
		if err != nil {
			return value.Value{}, fmt.Errorf("--bytes: %w", err)
		}
		return value.Bytes(b), nil
	default:
		return value.Null(), nil
	}
}

// parseJSON converts one JSON document into a value. Integral numbers become
// Int, other numbers Float.
func parseJSON(s string) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var x any
	if err := dec.Decode(&x); err != nil {
		return value.Value{}, fmt.Errorf("invalid JSON value: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return value.Value{}, errors.New("invalid JSON value: trailing data")
	}
	return value.FromAny(x)
}
