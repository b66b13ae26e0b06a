package hook

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned by Lookup for ids outside the registry.
var ErrUnknownTool = errors.New("hook: unknown tool")

// ProblemError is a failure of the wrapper itself, as opposed to findings
// reported by the tool. It is printed to stderr and the hook exits 1.
type ProblemError struct {
	Tool    string
	Problem string
	Details string
	Err     error
}

func (e *ProblemError) Error() string {
	return fmt.Sprintf("Problem with %s: %s\n%s\n", e.Tool, e.Problem, e.Details)
}

func (e *ProblemError) Unwrap() error {
	return e.Err
}

func problem(tool, what, details string, err error) *ProblemError {
	return &ProblemError{Tool: tool, Problem: what, Details: details, Err: err}
}
