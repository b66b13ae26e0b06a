package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
