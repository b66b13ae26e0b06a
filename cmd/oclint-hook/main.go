// Command oclint-hook is the pre-commit entry point of the oclint hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("oclint", os.Args[1:]))
}
