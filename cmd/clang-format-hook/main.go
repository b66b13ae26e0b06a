// Command clang-format-hook is the pre-commit entry point of the clang-format hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("clang-format", os.Args[1:]))
}
