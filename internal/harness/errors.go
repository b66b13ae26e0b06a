package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hookwrap/hookwrap/internal/diffreport"
)

var (
	// ErrHarness marks failures of the harness itself, such as a missing
	// entry point, rather than of the hook under test.
	ErrHarness = errors.New("harness: fault")

	// ErrEmptyOutput means pre-commit printed nothing where a status line
	// is always expected.
	ErrEmptyOutput = errors.New("harness: pre-commit produced no output")

	// ErrNoStrategy is returned when a scenario has nothing to run it.
	ErrNoStrategy = errors.New("harness: no strategy for scenario")
)

// MismatchError is an expectation failure: the run completed but its
// output or exit code differ from the scenario.
type MismatchError struct {
	Scenario     string
	Strategy     string
	Expected     []byte
	Actual       []byte
	ExpectedCode int
	ActualCode   int
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s):", e.Scenario, e.Strategy)
	if e.ExpectedCode != e.ActualCode {
		fmt.Fprintf(&b, " exit code %d, want %d", e.ActualCode, e.ExpectedCode)
	}
	if d := diffreport.Labeled(e.Expected, e.Actual, "expected", "actual"); d != nil {
		b.WriteString(" output differs\n")
		b.Write(d)
	}
	return b.String()
}

// IsMismatch reports whether err is an expectation failure.
func IsMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}
