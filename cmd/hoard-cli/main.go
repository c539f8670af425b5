package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hoard-go/internal/cli/command"
	"github.com/yndnr/hoard-go/internal/infra/buildinfo"
)

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, buildinfo.String(c.App.Name))
	}
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
