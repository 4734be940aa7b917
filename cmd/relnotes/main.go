package main

import (
	"os"

	"github.com/duux-ha/relnotes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
