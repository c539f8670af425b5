package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/internal/cli/repl"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Usage: "History file, empty to disable",
				Value: repl.DefaultHistoryFile(),
			},
		},
		Action: func(c *cli.Context) error {
			client := clientFor(c)
			fmt.Fprintf(c.App.Writer, "Connected to %s. Type .help for help.\n", client.Addr())

			r := repl.New(client,
				repl.WithIO(c.App.Reader, c.App.Writer),
				repl.WithHistory(repl.NewHistory(c.String("history"))),
			)
			return r.Run(c.Context)
		},
	}
}
