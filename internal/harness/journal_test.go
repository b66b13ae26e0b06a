package harness

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal(filepath.Join(t.TempDir(), "state", "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordsRuns(t *testing.T) {
	j := testJournal(t)

	if _, err := j.Latest(); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("Latest() on empty journal error = %v, want ErrNoRuns", err)
	}

	run, err := j.BeginRun("linux", map[string]string{hook.Cppcheck: "2.13.0"})
	if err != nil {
		t.Fatalf("BeginRun() error: %v", err)
	}

	ok := Outcome{
		Scenario: scenario.Scenario{Tool: hook.Cppcheck, Files: []string{"/x/ok.c"}},
		Strategy: "in-process",
		Duration: 15 * time.Millisecond,
	}
	bad := Outcome{
		Scenario: scenario.Scenario{Tool: hook.Cppcheck, Files: []string{"/x/err.c"}, ExpectedCode: 1},
		Strategy: "entry-point",
		Output:   []byte("unexpected"),
		Code:     2,
		Err:      &MismatchError{Scenario: "cppcheck err.c", Strategy: "entry-point", ExpectedCode: 1, ActualCode: 2},
	}
	for _, o := range []Outcome{ok, bad} {
		if err := j.Record(run, o); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	latest, err := j.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != run || latest.Total != 2 || latest.Passed != 1 || latest.GOOS != "linux" {
		t.Errorf("Latest() = %+v", latest)
	}
	if latest.Versions[hook.Cppcheck] != "2.13.0" {
		t.Errorf("Versions = %v", latest.Versions)
	}

	failures, err := j.Failures(run)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 {
		t.Fatalf("Failures() = %+v", failures)
	}
	f := failures[0]
	if f.Scenario != "cppcheck err.c" || f.Strategy != "entry-point" || f.ActualCode != 2 || f.Passed || f.Error == "" {
		t.Errorf("failure = %+v", f)
	}
}

func TestJournalRunsNewestFirst(t *testing.T) {
	j := testJournal(t)

	first, _ := j.BeginRun("linux", nil)
	second, _ := j.BeginRun("darwin", nil)

	runs, err := j.Runs(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != second || runs[1].ID != first {
		t.Errorf("Runs() = %+v", runs)
	}
	if runs[0].Total != 0 {
		t.Errorf("empty run has %d outcomes", runs[0].Total)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	fmtS := scenario.Scenario{Tool: hook.ClangFormat}
	chkS := scenario.Scenario{Tool: hook.Cppcheck}
	outcomes := []Outcome{
		{Scenario: fmtS},
		{Scenario: fmtS, Err: &MismatchError{}},
		{Scenario: chkS, Err: ErrHarness},
		{Scenario: chkS},
	}
	s := Summarize(outcomes)
	if s.Total != 4 || s.Passed != 2 || s.Mismatched != 1 || s.Faulted != 1 || s.OK() {
		t.Errorf("Summarize() = %+v", s)
	}
	if len(s.Tools) != 2 || s.Tools[0].Tool != hook.ClangFormat || s.Tools[1].Passed != 1 {
		t.Errorf("Tools = %+v", s.Tools)
	}
	if got := Failures(outcomes); len(got) != 2 || len(outcomes) != 4 {
		t.Errorf("Failures() = %d outcomes", len(got))
	}
	if Summarize(nil).OK() {
		t.Error("an empty run is not a pass")
	}
}
