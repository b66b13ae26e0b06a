// Command clang-tidy-hook is the pre-commit entry point of the clang-tidy hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("clang-tidy", os.Args[1:]))
}
