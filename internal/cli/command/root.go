package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/internal/cli/connection"
	"github.com/yndnr/hoard-go/internal/cli/output"
	"github.com/yndnr/hoard-go/internal/infra/buildinfo"
)

// DefaultServer is the address used when --server is not given.
const DefaultServer = "localhost:8000"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "hoard-cli",
		Usage:   "Hoard command-line client",
		Version: buildinfo.Get().Version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			FlushCommand(),
			MGetCommand(),
			MSetCommand(),
			RawCommand(),
			EncodeCommand(),
			DecodeCommand(),
			ShellCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Hoard server address",
			EnvVars: []string{"HOARD_SERVER"},
			Value:   DefaultServer,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Timeout for one request",
			Value:   connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: raw, json, yaml, table",
			EnvVars: []string{"HOARD_OUTPUT"},
			Value:   string(output.FormatRaw),
		},
	}
}

// GlobalFlags holds the flags shared by all commands.
type GlobalFlags struct {
	Server  string
	Timeout time.Duration
	Output  output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		format = output.FormatRaw
	}
	return &GlobalFlags{
		Server:  c.String("server"),
		Timeout: c.Duration("timeout"),
		Output:  format,
	}
}

// clientFor builds a client from the global flags.
func clientFor(c *cli.Context) *connection.Client {
	flags := ParseGlobalFlags(c)
	return connection.NewClient(flags.Server, flags.Timeout)
}

// render writes data in the selected output format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	return output.NewFormatter(flags.Output).Format(c.App.Writer, data)
}

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			if ParseGlobalFlags(c).Output == output.FormatRaw {
				_, err := fmt.Fprintln(c.App.Writer, buildinfo.String("hoard-cli"))
				return err
			}
			return render(c, buildinfo.Get())
		},
	}
}
