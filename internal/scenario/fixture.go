package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FixtureEntry is one record of an integration fixture file.
type FixtureEntry struct {
	Command     string   `json:"command"`
	Files       []string `json:"files"`
	Args        []string `json:"args"`
	ExpdOutput  string   `json:"expd_output"`
	ExpdRetcode int      `json:"expd_retcode"`
}

//go:embed fixtures/integration.json
var integrationFixture []byte

// Integration returns the bundled pre-commit scenarios.
func Integration() ([]Scenario, error) {
	return LoadFixture(bytes.NewReader(integrationFixture))
}

// LoadFixture reads a JSON array of fixture entries as integration
// scenarios. Placeholders are kept for Resolve.
func LoadFixture(r io.Reader) ([]Scenario, error) {
	var entries []FixtureEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("scenario: decode fixture: %w", err)
	}
	out := make([]Scenario, 0, len(entries))
	for i, e := range entries {
		if e.Command == "" {
			return nil, fmt.Errorf("scenario: fixture entry %d has no command", i)
		}
		out = append(out, Scenario{
			Tool:           e.Command,
			Args:           e.Args,
			Files:          e.Files,
			ExpectedOutput: []byte(e.ExpdOutput),
			ExpectedCode:   e.ExpdRetcode,
			Integration:    true,
		})
	}
	return out, nil
}

// Entry converts s into a fixture record, replacing dir with the
// {test_dir} placeholder.
func (s Scenario) Entry(dir string) FixtureEntry {
	unresolve := func(v string) string {
		if dir == "" {
			return v
		}
		return strings.ReplaceAll(v, dir, TestDir)
	}
	e := FixtureEntry{
		Command:     s.Tool,
		Args:        make([]string, len(s.Args)),
		Files:       make([]string, len(s.Files)),
		ExpdOutput:  unresolve(string(s.ExpectedOutput)),
		ExpdRetcode: s.ExpectedCode,
	}
	for i, a := range s.Args {
		e.Args[i] = unresolve(a)
	}
	for i, f := range s.Files {
		e.Files[i] = unresolve(f)
	}
	return e
}

// WriteFixture writes entries as an indented JSON array.
func WriteFixture(w io.Writer, entries []FixtureEntry) error {
	if entries == nil {
		entries = []FixtureEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("scenario: encode fixture: %w", err)
	}
	return nil
}

// AppendFixture loads the entries in r, appends more and writes the result
// to w. An empty r starts a new fixture.
func AppendFixture(r io.Reader, w io.Writer, more ...FixtureEntry) error {
	var entries []FixtureEntry
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("scenario: read fixture: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("scenario: decode fixture: %w", err)
		}
	}
	return WriteFixture(w, append(entries, more...))
}
