// Command include-what-you-use-hook is the pre-commit entry point of the include-what-you-use hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("include-what-you-use", os.Args[1:]))
}
