package scenario

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/hookwrap/hookwrap/internal/hook"
)

// Builder produces the scenario table for one platform and set of
// installed tool versions.
type Builder struct {
	// GOOS selects platform exclusions and the path separator; empty means
	// runtime.GOOS.
	GOOS string
	// Versions maps hook ids to installed versions. Only tools whose
	// output depends on the release need an entry.
	Versions map[string]string
	// Tools restricts the table to these hook ids; empty means all.
	Tools []string
}

// Build returns every scenario in a fixed order. Given the same builder
// fields it returns identical scenarios.
func (b Builder) Build() ([]Scenario, error) {
	steps := []struct {
		tools []string
		gen   func() ([]Scenario, error)
		unix  bool
	}{
		{[]string{hook.ClangFormat, hook.Uncrustify}, b.noDiff, false},
		{[]string{hook.ClangFormat, hook.Uncrustify}, b.formatters, false},
		{[]string{hook.ClangTidy}, b.clangTidy, false},
		{[]string{hook.Cppcheck}, b.cppcheck, false},
		{[]string{hook.Cpplint}, b.cpplint, false},
		// include-what-you-use has no Windows package; oclint does not run there.
		{[]string{hook.IncludeWhatYouUse}, b.iwyu, true},
		{[]string{hook.OCLint}, b.oclint, true},
	}

	var out []Scenario
	for _, s := range steps {
		if s.unix && b.goos() == "windows" {
			continue
		}
		if !b.wantsAny(s.tools) {
			continue
		}
		scenarios, err := s.gen()
		if err != nil {
			return nil, err
		}
		for _, sc := range scenarios {
			if b.wants(sc.Tool) {
				out = append(out, sc)
			}
		}
	}
	return out, nil
}

func (b Builder) goos() string {
	if b.GOOS == "" {
		return runtime.GOOS
	}
	return b.GOOS
}

func (b Builder) wants(id string) bool {
	return len(b.Tools) == 0 || slices.Contains(b.Tools, id)
}

func (b Builder) wantsAny(ids []string) bool {
	return slices.ContainsFunc(ids, b.wants)
}

// path returns the placeholder path of a sample in the platform's syntax.
func (b Builder) path(name string) string {
	if b.goos() == "windows" {
		return TestDir + `\` + name
	}
	return TestDir + "/" + name
}

func (b Builder) version(id string) (string, error) {
	v, ok := b.Versions[id]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingVersion, id)
	}
	return v, nil
}

// perFile expands one output template over the four samples.
func (b Builder) perFile(tool string, argSets [][]string, tmpl func(file string) []byte, failCode int) []Scenario {
	var out []Scenario
	for _, name := range SampleFiles {
		for _, set := range argSets {
			out = append(out, b.scenario(tool, set, name, tmpl, failCode))
		}
	}
	return out
}

// scenario runs tool on one sample. Clean samples expect no output and
// code 0; flawed ones expect the template and failCode.
func (b Builder) scenario(tool string, set []string, name string, tmpl func(file string) []byte, failCode int) Scenario {
	file := b.path(name)
	s := Scenario{Tool: tool, Args: dialect(set, name), Files: []string{file}, ExpectedOutput: []byte{}}
	if Flawed(name) {
		s.ExpectedOutput = tmpl(file)
		s.ExpectedCode = failCode
	}
	return s
}

// dialect swaps the C standard for the C++ one when the target is C++.
func dialect(set []string, name string) []string {
	out := slices.Clone(set)
	if !strings.HasSuffix(name, ".cpp") {
		return out
	}
	if i := slices.Index(out, "-std=c18"); i >= 0 {
		out[i] = "-std=c++20"
	}
	return out
}

func (b Builder) uncrustifyConfig() []string {
	return []string{"-c", b.path(UncCfg)}
}

// noDiff checks that both flawed samples are handled in one run and that
// --no-diff leaves only the exit code.
func (b Builder) noDiff() ([]Scenario, error) {
	files := []string{b.path(ErrC), b.path(ErrCpp)}
	return []Scenario{
		{Tool: hook.ClangFormat, Args: []string{"--style=google", hook.NoDiffFlag}, Files: files, ExpectedOutput: []byte{}, ExpectedCode: 1},
		{Tool: hook.Uncrustify, Args: append(b.uncrustifyConfig(), hook.NoDiffFlag), Files: files, ExpectedOutput: []byte{}, ExpectedCode: 1},
	}, nil
}

// formatters expects the same diff from clang-format and uncrustify, both
// when printing the result and when rewriting the file.
func (b Builder) formatters() ([]Scenario, error) {
	clangSets := [][]string{{"--style=google"}, {"--style=google", "-i"}}
	uncSets := [][]string{b.uncrustifyConfig(), append(b.uncrustifyConfig(), "--replace", "--no-backup")}
	diff := func(file string) []byte { return render(formatterDiff, file) }

	var out []Scenario
	for _, name := range SampleFiles {
		for _, set := range clangSets {
			out = append(out, b.scenario(hook.ClangFormat, set, name, diff, 1))
		}
		for _, set := range uncSets {
			out = append(out, b.scenario(hook.Uncrustify, set, name, diff, 1))
		}
	}
	return out, nil
}

func (b Builder) clangTidy() ([]Scenario, error) {
	common := []string{"-quiet", "-checks=clang-diagnostic-return-type"}
	var sets [][]string
	for _, extra := range [][]string{nil, {"-fix"}, {"--fix-errors"}, {"--", "-std=c18"}} {
		sets = append(sets, append(slices.Clone(common), extra...))
	}
	return b.perFile(hook.ClangTidy, sets, func(file string) []byte { return render(clangTidyError, file) }, 1), nil
}

func (b Builder) cppcheck() ([]Scenario, error) {
	v, err := b.version(hook.Cppcheck)
	if err != nil {
		return nil, err
	}
	tmpl, err := cppcheckOutput.Select(hook.Cppcheck, v)
	if err != nil {
		return nil, err
	}
	return b.perFile(hook.Cppcheck, [][]string{{}}, func(file string) []byte { return render(tmpl, file) }, 1), nil
}

func (b Builder) cpplint() ([]Scenario, error) {
	sets := [][]string{{"--verbose=0", "--quiet"}}
	return b.perFile(hook.Cpplint, sets, func(file string) []byte { return render(cpplintErrors, file) }, 1), nil
}

func (b Builder) iwyu() ([]Scenario, error) {
	return b.perFile(hook.IncludeWhatYouUse, [][]string{{}}, func(file string) []byte { return render(iwyuErrors, file) }, 3), nil
}

func (b Builder) oclint() ([]Scenario, error) {
	v, err := b.version(hook.OCLint)
	if err != nil {
		return nil, err
	}
	variant, err := oclintVariants.Select(hook.OCLint, v)
	if err != nil {
		return nil, err
	}
	set := append(slices.Clone(variant.Args), "--", "-std=c18")
	report := func(file string) []byte {
		return render(oclintReport, file, schemeToken, variant.Scheme, versionToken, v)
	}
	return b.perFile(hook.OCLint, [][]string{set}, report, 6), nil
}
