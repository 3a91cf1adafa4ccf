package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/slatefx/slate/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Resolution failures already rendered their own output
		// through the formatter; only surface the rest.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
