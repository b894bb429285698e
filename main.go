package main

import (
	"errors"
	"fmt"
	"os"

	"timetracker/internal/cli"

	"github.com/mattn/go-isatty"
)

func main() {
	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	defer app.Close()

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		app.Close()
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
