// Package args splits a hook's command line into tool flags and target files
// and merges the flags with the defaults each wrapped tool is run with.
package args

import (
	"os"
	"slices"
	"strings"
)

// Separator ends the tool's own flags; everything after it is handed to the
// compiler by the clang based tools.
const Separator = "--"

// Default is a flag the wrapper adds unless the caller already supplied it.
type Default struct {
	// Args are appended verbatim, e.g. ["--error-exitcode=1"] or ["-c", "defaults.cfg"].
	Args []string

	// Keys lists every spelling that satisfies the default. When empty the
	// key of Args[0] is the only accepted spelling.
	Keys []string
}

// Flag returns a single-argument Default. Aliases are alternate spellings
// that also satisfy it, such as "-i" for "--in-place".
func Flag(arg string, aliases ...string) Default {
	keys := make([]string, 0, len(aliases)+1)
	keys = append(keys, Key(arg))
	for _, a := range aliases {
		keys = append(keys, Key(a))
	}
	return Default{Args: []string{arg}, Keys: keys}
}

// Key returns the option name of arg: the text before the first "=".
func Key(arg string) string {
	k, _, _ := strings.Cut(arg, "=")
	return k
}

func (d Default) keys() []string {
	if len(d.Keys) > 0 {
		return d.Keys
	}
	if len(d.Args) == 0 {
		return nil
	}
	return []string{Key(d.Args[0])}
}

// SatisfiedBy reports whether args already carry one of d's spellings.
// Compiler arguments after the separator are not considered, but the
// separator itself is, so a default may key on its presence.
func (d Default) SatisfiedBy(args []string) bool {
	keys := d.keys()
	for _, a := range toolFlags(args) {
		if slices.Contains(keys, Key(a)) {
			return true
		}
	}
	return false
}

// AddIfMissing returns a copy of args with d appended unless it is already
// satisfied. Appended flags land after the caller's flags but before a
// separator, so they are never mistaken for compiler arguments.
func AddIfMissing(args []string, d Default) []string {
	out := slices.Clone(args)
	if len(d.Args) == 0 || d.SatisfiedBy(args) {
		return out
	}
	i := slices.Index(out, Separator)
	if i < 0 || d.Args[0] == Separator {
		return append(out, d.Args...)
	}
	return slices.Insert(out, i, d.Args...)
}

// Merge applies every default in order.
func Merge(args []string, defaults ...Default) []string {
	out := slices.Clone(args)
	for _, d := range defaults {
		out = AddIfMissing(out, d)
	}
	return out
}

// Has reports whether any tool flag is spelled as one of names.
func Has(args []string, names ...string) bool {
	for _, a := range toolFlags(args) {
		if slices.Contains(names, Key(a)) {
			return true
		}
	}
	return false
}

// Take removes every occurrence of a wrapper-only boolean flag and reports
// whether it was present.
func Take(args []string, name string) ([]string, bool) {
	rest := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == name {
			found = true
			continue
		}
		rest = append(rest, a)
	}
	return rest, found
}

// ExtractPin removes a "--version X" or "--version=X" pin from args. A bare
// trailing "--version" is left in place for the tool to answer.
func ExtractPin(args []string) (rest []string, pin string, ok bool) {
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--version" && i+1 < len(args):
			pin, ok = args[i+1], true
			i++
		case strings.HasPrefix(a, "--version="):
			pin, ok = strings.TrimPrefix(a, "--version="), true
		default:
			rest = append(rest, a)
		}
	}
	return rest, pin, ok
}

// Split separates argv into tool flags and target files. A positional
// argument naming an existing regular file is a target unless it is a .cfg
// configuration file; order is preserved on both sides.
//
// After the separator only the trailing run of files counts, since that is
// where pre-commit appends file names. A file that is the value of a
// compiler option, as in "-include pre.h", stays a flag.
func Split(argv []string, isFile func(string) bool) (flags, files []string) {
	if isFile == nil {
		isFile = IsRegularFile
	}
	isTarget := func(a string) bool {
		return !strings.HasPrefix(a, "-") && !strings.HasSuffix(a, ".cfg") && isFile(a)
	}

	head, tail := argv, []string(nil)
	if i := slices.Index(argv, Separator); i >= 0 {
		head, tail = argv[:i], argv[i:]
	}
	for _, a := range head {
		if isTarget(a) {
			files = append(files, a)
			continue
		}
		flags = append(flags, a)
	}

	start := len(tail)
	for start > 1 && isTarget(tail[start-1]) && !slices.Contains(compilerValueFlags, tail[start-2]) {
		start--
	}
	flags = append(flags, tail[:start]...)
	return flags, append(files, tail[start:]...)
}

// compilerValueFlags take the following argument as a file operand.
var compilerValueFlags = []string{"-include", "-imacros", "-include-pch", "-o", "-MF", "-Xclang"}

// IsRegularFile reports whether path names an existing regular file.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// toolFlags returns args up to and including the separator.
func toolFlags(args []string) []string {
	if i := slices.Index(args, Separator); i >= 0 {
		return args[:i+1]
	}
	return args
}
