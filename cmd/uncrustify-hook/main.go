// Command uncrustify-hook is the pre-commit entry point of the uncrustify hook.
package main

import (
	"os"

	"github.com/hookwrap/hookwrap/internal/cli"
)

func main() {
	os.Exit(cli.RunHook("uncrustify", os.Args[1:]))
}
