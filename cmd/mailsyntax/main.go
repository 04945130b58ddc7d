package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(err)
		os.Exit(1)
	}
}
