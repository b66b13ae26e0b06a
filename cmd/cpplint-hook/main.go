// Command cpplint-hook is the pre-commit entry point of the cpplint hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("cpplint", os.Args[1:]))
}
