// Package scenario builds the table of hook runs and their expected
// results for the tool versions installed on this machine.
package scenario

import (
	"bytes"
	"strings"

	"github.com/hookwrap/hookwrap/internal/hook"
)

// Placeholders substituted when a scenario is resolved against a scratch
// directory.
const (
	TestDir = "{test_dir}"
	RepoDir = "{repo_dir}"
)

// Scenario is one hook run and what it must produce.
type Scenario struct {
	// Tool is the hook id.
	Tool  string
	Args  []string
	Files []string

	// ExpectedOutput is stdout followed by stderr, or the pre-commit output
	// for integration scenarios.
	ExpectedOutput []byte
	ExpectedCode   int

	// Integration scenarios run through pre-commit in a git repository.
	Integration bool
}

// Name is a short human readable description.
func (s Scenario) Name() string {
	parts := []string{s.Tool}
	for _, f := range s.Files {
		parts = append(parts, base(f))
	}
	parts = append(parts, s.Args...)
	name := strings.Join(parts, " ")
	if s.Integration {
		name = "pre-commit " + name
	}
	return name
}

// EditsInPlace reports whether the run may rewrite its files.
func (s Scenario) EditsInPlace() bool {
	t, err := hook.Lookup(s.Tool)
	if err != nil {
		return false
	}
	return t.EditsInPlace(s.Args)
}

// Resolve returns a copy with the placeholders replaced by dir and repoDir.
func (s Scenario) Resolve(dir, repoDir string) Scenario {
	r := strings.NewReplacer(TestDir, dir, RepoDir, repoDir)
	out := s
	out.Args = replaceAll(r, s.Args)
	out.Files = replaceAll(r, s.Files)
	out.ExpectedOutput = []byte(r.Replace(string(s.ExpectedOutput)))
	return out
}

// Argv is the command line handed to the hook: files first, then flags.
func (s Scenario) Argv() []string {
	argv := make([]string, 0, len(s.Files)+len(s.Args))
	argv = append(argv, s.Files...)
	return append(argv, s.Args...)
}

// HasFlawedFile reports whether any target is a flawed sample.
func (s Scenario) HasFlawedFile() bool {
	for _, f := range s.Files {
		if Flawed(f) {
			return true
		}
	}
	return false
}

// Equal reports whether output and code match the expectation.
func (s Scenario) Equal(output []byte, code int) bool {
	return bytes.Equal(s.ExpectedOutput, output) && s.ExpectedCode == code
}

func replaceAll(r *strings.Replacer, in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = r.Replace(v)
	}
	return out
}

// base returns the last element of p for either separator, so Windows
// style scenario paths read the same on every host.
func base(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
