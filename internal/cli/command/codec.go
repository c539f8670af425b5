package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/internal/cli/output"
	"github.com/yndnr/hoard-go/pkg/value"
)

// EncodeCommand returns the encode command.
func EncodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Print the wire encoding of a value",
		Flags: valueFlags(),
		Action: func(c *cli.Context) error {
			v, err := valueFromFlags(c)
			if err != nil {
				return err
			}
			enc, err := value.EncodeString(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, enc)
			return err
		},
	}
}

// DecodeCommand returns the decode command.
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a wire token",
		ArgsUsage: "TOKEN",
		Action: func(c *cli.Context) error {
			token, err := oneArg(c, "token")
			if err != nil {
				return err
			}
			v, err := value.DecodeString(token)
			if err != nil {
				return err
			}
			if ParseGlobalFlags(c).Output == output.FormatRaw {
				_, err = fmt.Fprintf(c.App.Writer, "%s %s\n", v.Kind(), v)
				return err
			}
			return render(c, v.Interface())
		},
	}
}
