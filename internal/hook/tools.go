package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hookwrap/hookwrap/internal/args"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// Hook ids.
const (
	ClangFormat       = "clang-format"
	Uncrustify        = "uncrustify"
	ClangTidy         = "clang-tidy"
	Cppcheck          = "cppcheck"
	Cpplint           = "cpplint"
	IncludeWhatYouUse = "include-what-you-use"
	OCLint            = "oclint"
)

// UncrustifyDefaultsFile is generated in the working directory when
// uncrustify runs without -c.
const UncrustifyDefaultsFile = "defaults.cfg"

// NoDiffFlag makes formatters report only through the exit code.
const NoDiffFlag = "--no-diff"

var clangFormat = &Tool{
	ID:             ClangFormat,
	Binary:         "clang-format",
	Kind:           KindFormatter,
	Policy:         PolicyDiff,
	VersionPattern: regexp.MustCompile(`clang-format version (\d+\.\d+\.\d+)`),
	InPlaceFlags:   []string{"-i"},
}

var uncrustify = &Tool{
	ID:             Uncrustify,
	Binary:         "uncrustify",
	Kind:           KindFormatter,
	Policy:         PolicyDiff,
	VersionPattern: regexp.MustCompile(`[Uu]ncrustify[-_ ](\d+\.\d+(?:\.\d+)?)`),
	// Quiet keeps stderr empty so only the formatted text comes back.
	Defaults:     []args.Default{args.Flag("-q", "--quiet")},
	FileFlag:     "-f",
	InPlaceFlags: []string{"--replace"},
	Prepare:      uncrustifyConfig,
}

// clangTidy exits with its own code; warnings summaries are dropped.
var clangTidy = &Tool{
	ID:             ClangTidy,
	Binary:         "clang-tidy",
	Kind:           KindAnalyzer,
	Policy:         PolicyNative,
	VersionPattern: regexp.MustCompile(`LLVM version (\d+\.\d+\.\d+)`),
	Defaults: []args.Default{
		// Without a compilation database clang-tidy complains unless it is
		// handed compiler arguments.
		{Args: []string{args.Separator, "-DCMAKE_EXPORT_COMPILE_COMMANDS"}, Keys: []string{args.Separator, "-p", "--p"}},
		args.Flag("-checks=*", "--checks"),
	},
	InPlaceFlags:  []string{"-fix", "--fix", "--fix-errors", "-fix-errors"},
	FilesFirst:    true,
	FilesOptional: true,
	Filter:        tidyFilter,
}

// cppcheck only exits non-zero on findings when told to.
var cppcheck = &Tool{
	ID:             Cppcheck,
	Binary:         "cppcheck",
	Kind:           KindAnalyzer,
	Policy:         PolicyNative,
	VersionPattern: regexp.MustCompile(`Cppcheck (\d+\.\d+(?:\.\d+)?)`),
	Defaults: []args.Default{
		args.Flag("-q", "--quiet"),
		args.Flag("--error-exitcode=1"),
		{
			Args: []string{"--suppress=unmatchedSuppression", "--suppress=missingIncludeSystem", "--suppress=unusedFunction"},
			Keys: []string{"--suppress"},
		},
	},
	FilesFirst: true,
	RunAll:     true,
}

var cpplint = &Tool{
	ID:             Cpplint,
	Binary:         "cpplint",
	Kind:           KindAnalyzer,
	Policy:         PolicyNative,
	VersionPattern: regexp.MustCompile(`cpplint (\d+\.\d+\.\d+)`),
	Defaults:       []args.Default{args.Flag("--verbose=0", "--v")},
}

// includeWhatYouUse exits 3 when it has suggestions, and sometimes non-zero
// even when it states the includes are correct.
var includeWhatYouUse = &Tool{
	ID:             IncludeWhatYouUse,
	Binary:         "include-what-you-use",
	Kind:           KindAnalyzer,
	Policy:         PolicyNativeUnlessClean,
	VersionPattern: regexp.MustCompile(`include-what-you-use (\d+\.\d+(?:\.\d+)?)`),
	FilesFirst:     true,
	CleanMarker:    []byte("has correct #includes/fwd-decls"),
}

// oclint exits 6 when its report has violations or compiler errors.
var oclint = &Tool{
	ID:             OCLint,
	Binary:         "oclint",
	Kind:           KindAnalyzer,
	Policy:         PolicyNative,
	VersionPattern: regexp.MustCompile(`OCLint version ([\d.]+)\.`),
	FilesFirst:     true,
	FilesOptional:  true,
}

var warningsGenerated = regexp.MustCompile(`[\d,]+ warnings? generated\.\s+`)

func tidyFilter(flags []string, res *runner.Result) {
	res.Stderr = warningsGenerated.ReplaceAll(res.Stderr, nil)
	if len(res.Stderr) > 0 && args.Has(flags, "--fix-errors", "-fix-errors") {
		res.ExitCode = 1
	}
}

// uncrustifyConfig points uncrustify at a defaults file when no -c was
// given, generating it from `uncrustify --show-config` on first use.
func uncrustifyConfig(ctx context.Context, r runner.Runner, dir string, flags []string) ([]string, error) {
	if args.Has(flags, "-c") {
		return flags, nil
	}
	path := filepath.Join(dir, UncrustifyDefaultsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		res, err := r.Run(ctx, dir, "uncrustify", "--show-config")
		if err != nil {
			return nil, err
		}
		if res.ExitCode != 0 {
			return nil, fmt.Errorf("uncrustify --show-config exited %d: %s", res.ExitCode, res.Stderr)
		}
		if err := os.WriteFile(path, res.Stdout, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", UncrustifyDefaultsFile, err)
		}
	}
	return args.AddIfMissing(flags, args.Default{Args: []string{"-c", UncrustifyDefaultsFile}}), nil
}
