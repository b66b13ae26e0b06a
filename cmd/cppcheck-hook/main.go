// Command cppcheck-hook is the pre-commit entry point of the cppcheck hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("cppcheck", os.Args[1:]))
}
