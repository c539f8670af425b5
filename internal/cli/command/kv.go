package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/internal/cli/connection"
	"github.com/yndnr/hoard-go/internal/cli/output"
	"github.com/yndnr/hoard-go/pkg/value"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value stored at a key",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

func getAction(c *cli.Context) error {
	key, err := oneArg(c, "key")
	if err != nil {
		return err
	}

	client := clientFor(c)
	raw, err := client.GetRaw(c.Context, key)
	if errors.Is(err, connection.ErrNotFound) {
		return fmt.Errorf("%s: not found", key)
	}
	if err != nil {
		return err
	}
	if ParseGlobalFlags(c).Output == output.FormatRaw {
		return render(c, raw)
	}

	v, err := value.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return render(c, v.Interface())
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value at a key",
		ArgsUsage: "KEY",
		Flags:     valueFlags(),
		Action: func(c *cli.Context) error {
			key, err := oneArg(c, "key")
			if err != nil {
				return err
			}
			v, err := valueFromFlags(c)
			if err != nil {
				return err
			}
			if err := clientFor(c).Set(c.Context, key, v); err != nil {
				return err
			}
			return render(c, "Ok!")
		},
	}
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"del"},
		Usage:     "Remove a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			key, err := oneArg(c, "key")
			if err != nil {
				return err
			}
			err = clientFor(c).Delete(c.Context, key)
			if errors.Is(err, connection.ErrNotFound) {
				return fmt.Errorf("%s: not found", key)
			}
			if err != nil {
				return err
			}
			return render(c, "Ok!")
		},
	}
}

// FlushCommand returns the flush command.
func FlushCommand() *cli.Command {
	return &cli.Command{
		Name:  "flush",
		Usage: "Remove every key",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("force") {
				fmt.Fprintf(c.App.Writer, "Remove every key on %s? [y/N]: ", c.String("server"))
				var confirm string
				fmt.Fscanln(c.App.Reader, &confirm)
				if confirm != "y" && confirm != "Y" {
					fmt.Fprintln(c.App.Writer, "Cancelled.")
					return nil
				}
			}
			if err := clientFor(c).Flush(c.Context); err != nil {
				return err
			}
			return render(c, "OK")
		},
	}
}

// MGetCommand returns the mget command.
func MGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "mget",
		Usage:     "Get the values of several keys",
		ArgsUsage: "KEY [KEY...]",
		Action: func(c *cli.Context) error {
			keys := c.Args().Slice()
			if len(keys) == 0 {
				return errors.New("at least one key is required")
			}
			results, err := clientFor(c).MGet(c.Context, keys...)
			if err != nil {
				return err
			}
			return renderResults(c, results)
		},
	}
}

// mgetRow is the structured form of one MGET result.
type mgetRow struct {
	Key   string `json:"key" yaml:"key"`
	Found bool   `json:"found" yaml:"found"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type mgetRows []mgetRow

func (rows mgetRows) Table() *output.Table {
	t := &output.Table{Headers: []string{"KEY", "VALUE"}}
	for _, r := range rows {
		switch {
		case r.Error != "":
			t.AddRow(r.Key, r.Error)
		case !r.Found:
			t.AddRow(r.Key, "NIL")
		default:
			t.AddRow(r.Key, output.Cell(r.Value))
		}
	}
	return t
}

func renderResults(c *cli.Context, results []connection.Result) error {
	if ParseGlobalFlags(c).Output == output.FormatRaw {
		lines := make([]string, len(results))
		for i, r := range results {
			lines[i] = r.Key + "\t" + rawResult(r)
		}
		return render(c, lines)
	}

	rows := make(mgetRows, len(results))
	for i, r := range results {
		rows[i] = mgetRow{Key: r.Key}
		var se *connection.ServerError
		switch {
		case errors.As(r.Err, &se):
			rows[i].Error = se.Reply
		case r.Err != nil:
		default:
			rows[i].Found = true
			rows[i].Value = r.Value.Interface()
		}
	}
	return render(c, rows)
}

func rawResult(r connection.Result) string {
	var se *connection.ServerError
	switch {
	case errors.As(r.Err, &se):
		return se.Reply
	case r.Err != nil:
		return "NIL"
	default:
		return r.Raw
	}
}

// MSetCommand returns the mset command.
func MSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "mset",
		Usage:     "Store several values; each value is JSON",
		ArgsUsage: "KEY JSON [KEY JSON...]",
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("mset needs KEY JSON pairs")
			}
			pairs := make([]connection.Pair, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				v, err := parseJSON(args[i+1])
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				pairs = append(pairs, connection.Pair{Key: args[i], Value: v})
			}
			if err := clientFor(c).MSet(c.Context, pairs); err != nil {
				return err
			}
			return render(c, "Ok")
		},
	}
}

// RawCommand returns the raw command.
func RawCommand() *cli.Command {
	return &cli.Command{
		Name:      "raw",
		Usage:     "Send a request line verbatim and print the reply",
		ArgsUsage: "COMMAND [ARGS...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("a request is required")
			}
			reply, err := clientFor(c).Do(c.Context, strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, reply)
			return err
		},
	}
}

func oneArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("exactly one %s is required", name)
	}
	return c.Args().First(), nil
}
