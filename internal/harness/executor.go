package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Outcome is the verdict for one scenario under one strategy.
type Outcome struct {
	Scenario scenario.Scenario
	Strategy string
	Output   []byte
	Code     int
	Duration time.Duration
	// Err is nil on success, a *MismatchError on an expectation failure or
	// a harness fault otherwise.
	Err error
}

// Passed reports whether the run matched its expectation.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// Executor runs scenarios one after another, each strategy in its own
// arena cell.
type Executor struct {
	Arena *Arena
	// Strategies run every non-integration scenario; their results must
	// all match the expectation.
	Strategies []Strategy
	// Integration runs scenarios loaded from an integration fixture.
	Integration Strategy
	// Normalizers default to DefaultNormalizers.
	Normalizers []Normalizer
	// RepoDir replaces the {repo_dir} placeholder.
	RepoDir string

	// Journal, when set, records every outcome under RunID.
	Journal *Journal
	RunID   int64

	// FailFast stops at the first failing outcome.
	FailFast bool
	// OnOutcome is called after each run, e.g. for progress output.
	OnOutcome func(Outcome)
}

// Run executes every scenario and returns all outcomes in order. The error
// joins every failure; outcomes are returned either way.
func (e *Executor) Run(ctx context.Context, scenarios []scenario.Scenario) ([]Outcome, error) {
	if e.Arena == nil {
		return nil, fmt.Errorf("%w: executor has no arena", ErrHarness)
	}
	var outcomes []Outcome
	var errs []error
	for _, s := range scenarios {
		strategies := e.Strategies
		if s.Integration {
			strategies = nil
			if e.Integration != nil {
				strategies = []Strategy{e.Integration}
			}
		}
		if len(strategies) == 0 {
			o := Outcome{Scenario: s, Err: fmt.Errorf("%w: %s", ErrNoStrategy, s.Name())}
			outcomes = append(outcomes, o)
			errs = append(errs, o.Err)
			continue
		}
		for _, st := range strategies {
			if err := ctx.Err(); err != nil {
				return outcomes, errors.Join(append(errs, err)...)
			}
			o := e.runOne(ctx, st, s)
			outcomes = append(outcomes, o)
			if e.OnOutcome != nil {
				e.OnOutcome(o)
			}
			if e.Journal != nil {
				if err := e.Journal.Record(e.RunID, o); err != nil {
					slog.Warn("journal record failed", "error", err)
				}
			}
			if o.Err != nil {
				errs = append(errs, o.Err)
				if e.FailFast {
					return outcomes, errors.Join(errs...)
				}
			}
		}
	}
	return outcomes, errors.Join(errs...)
}

func (e *Executor) runOne(ctx context.Context, st Strategy, s scenario.Scenario) Outcome {
	o := Outcome{Scenario: s, Strategy: st.Name()}
	dir, err := e.Arena.Cell()
	if err != nil {
		o.Err = fmt.Errorf("%w: %w", ErrHarness, err)
		return o
	}
	resolved := s.Resolve(dir, e.RepoDir)

	start := time.Now()
	res, err := st.Run(ctx, resolved, dir)
	o.Duration = time.Since(start)
	if err != nil {
		o.Err = err
		return o
	}

	ns := e.Normalizers
	if ns == nil {
		ns = DefaultNormalizers
	}
	o.Output = normalize(ns, resolved, dir, res.Output)
	o.Code = res.Code
	slog.Debug("scenario ran", "scenario", s.Name(), "strategy", st.Name(), "code", o.Code, "duration", o.Duration)

	if !bytes.Equal(o.Output, resolved.ExpectedOutput) || o.Code != resolved.ExpectedCode {
		o.Err = &MismatchError{
			Scenario:     s.Name(),
			Strategy:     st.Name(),
			Expected:     resolved.ExpectedOutput,
			Actual:       o.Output,
			ExpectedCode: resolved.ExpectedCode,
			ActualCode:   o.Code,
		}
	}
	return o
}
