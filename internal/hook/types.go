package hook

import (
	"bytes"
	"context"
	"regexp"
	"slices"

	"github.com/hookwrap/hookwrap/internal/args"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// Kind separates tools that rewrite source from tools that only report.
type Kind int

const (
	// KindAnalyzer reports findings on stdout/stderr and through its exit code.
	KindAnalyzer Kind = iota

	// KindFormatter prints the formatted file, or rewrites it in place.
	KindFormatter
)

func (k Kind) String() string {
	if k == KindFormatter {
		return "formatter"
	}
	return "analyzer"
}

// ExitPolicy maps a tool's raw result onto the code the hook exits with.
type ExitPolicy int

const (
	// PolicyNative passes the tool's exit code through untouched. Codes such
	// as 3 (include-what-you-use) and 6 (oclint) reach pre-commit as is.
	PolicyNative ExitPolicy = iota

	// PolicyDiff fails with 1 when the tool failed or produced a diff.
	PolicyDiff

	// PolicyNativeUnlessClean is PolicyNative, except that output carrying
	// the tool's clean marker always passes.
	PolicyNativeUnlessClean
)

func (p ExitPolicy) String() string {
	switch p {
	case PolicyDiff:
		return "diff"
	case PolicyNativeUnlessClean:
		return "native-unless-clean"
	default:
		return "native"
	}
}

// Tool is the static description of one wrapped binary.
type Tool struct {
	// ID is the pre-commit hook id, e.g. "clang-format".
	ID string
	// Binary is the executable looked up on PATH.
	Binary string
	Kind   Kind
	Policy ExitPolicy

	// VersionPattern extracts the version from `<binary> --version`; the
	// first capture group is the version.
	VersionPattern *regexp.Regexp

	// Defaults are merged into the caller's flags in order.
	Defaults []args.Default

	// FileFlag precedes the file name for formatters that need one, unless
	// the run edits in place.
	FileFlag string
	// InPlaceFlags make the tool rewrite its input.
	InPlaceFlags []string

	// FilesFirst puts the file before the flags on the tool command line.
	FilesFirst bool
	// FilesOptional allows a run with neither files nor flags.
	FilesOptional bool
	// RunAll runs every file before the exit code is checked. Other
	// analyzers stop at the first failing file.
	RunAll bool

	// CleanMarker in the output means the file needs no change.
	CleanMarker []byte

	// Filter post-processes the result of a single file run.
	Filter func(flags []string, res *runner.Result)

	// Prepare may adjust flags after defaults are merged, e.g. to provide a
	// generated configuration file.
	Prepare func(ctx context.Context, r runner.Runner, dir string, flags []string) ([]string, error)
}

// EditsInPlace reports whether flags make the tool rewrite its input.
func (t *Tool) EditsInPlace(flags []string) bool {
	return len(t.InPlaceFlags) > 0 && args.Has(flags, t.InPlaceFlags...)
}

// Clean reports whether res carries the tool's clean marker.
func (t *Tool) Clean(res runner.Result) bool {
	if len(t.CleanMarker) == 0 {
		return false
	}
	return bytes.Contains(res.Stdout, t.CleanMarker) || bytes.Contains(res.Stderr, t.CleanMarker)
}

// InPlaceFlag returns the primary in-place flag, or "" if the tool has none.
func (t *Tool) InPlaceFlag() string {
	if len(t.InPlaceFlags) == 0 {
		return ""
	}
	return t.InPlaceFlags[0]
}

func (t *Tool) clone() *Tool {
	c := *t
	c.Defaults = slices.Clone(t.Defaults)
	c.InPlaceFlags = slices.Clone(t.InPlaceFlags)
	return &c
}

// Command is the capability set every wrapper offers.
type Command interface {
	// NormalizeArgs merges the tool defaults into the caller's flags.
	NormalizeArgs(flags []string) []string
	// Invoke runs the tool over inv.Files and returns the accumulated result.
	Invoke(ctx context.Context, inv runner.Invocation) (runner.Result, error)
	// ExitCode maps a result onto the hook's exit code.
	ExitCode(res runner.Result) int
}

// Outcome is what a hook run writes and exits with.
type Outcome struct {
	Stdout []byte
	Stderr []byte
	Code   int
}
