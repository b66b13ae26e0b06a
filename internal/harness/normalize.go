package harness

import (
	"bytes"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Normalizer removes a platform or release dependent part of the output of
// a run of s in dir.
type Normalizer func(s scenario.Scenario, dir string, out []byte) []byte

// DefaultNormalizers are applied to every run in order.
var DefaultNormalizers = []Normalizer{
	RealDir,
	InfoLines,
	CxxWarningCounts,
}

var (
	infoLine     = regexp.MustCompile(`\[INFO\].*\n`)
	warningCount = regexp.MustCompile(`[\d,]+ warnings and `)
)

// InfoLines drops the [INFO] lines pre-commit prints while it sets up
// environments on first use.
func InfoLines(_ scenario.Scenario, _ string, out []byte) []byte {
	return infoLine.ReplaceAll(out, nil)
}

// CxxWarningCounts drops the warning counts clang prints in C++20 mode,
// which vary with the compiler release.
func CxxWarningCounts(s scenario.Scenario, _ string, out []byte) []byte {
	if !slices.Contains(s.Args, "-std=c++20") {
		return out
	}
	if !slices.ContainsFunc(s.Files, func(f string) bool { return strings.HasSuffix(f, scenario.ErrCpp) }) {
		return out
	}
	return warningCount.ReplaceAll(out, nil)
}

// RealDir maps the symlink resolved form of dir back to dir. Tools that
// resolve their input (the macOS temp directory lives behind /private)
// would otherwise print paths that never match the expectation.
func RealDir(_ scenario.Scenario, dir string, out []byte) []byte {
	if dir == "" {
		return out
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil || resolved == dir {
		return out
	}
	return bytes.ReplaceAll(out, []byte(resolved), []byte(dir))
}

func normalize(ns []Normalizer, s scenario.Scenario, dir string, out []byte) []byte {
	for _, n := range ns {
		out = n(s, dir, out)
	}
	return out
}
