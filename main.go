package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "thortx",
		Usage: "build, sign, sponsor and dispatch VeChainThor transactions",
		Commands: []*cli.Command{
			serveCommand,
			decodeCommand,
			gasCommand,
			fundCommand,
			configCommand,
			mnemonicCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
