package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Record runs each scenario once with st and keeps what it produced as a
// fixture entry. The output of a trusted tool release becomes the
// expectation for later verify runs.
func Record(ctx context.Context, a *Arena, st Strategy, scenarios []scenario.Scenario, ns []Normalizer) ([]scenario.FixtureEntry, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: recorder has no arena", ErrHarness)
	}
	if ns == nil {
		ns = DefaultNormalizers
	}
	entries := make([]scenario.FixtureEntry, 0, len(scenarios))
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		dir, err := a.Cell()
		if err != nil {
			return entries, fmt.Errorf("%w: %w", ErrHarness, err)
		}
		resolved := s.Resolve(dir, "")
		res, err := st.Run(ctx, resolved, dir)
		if err != nil {
			return entries, fmt.Errorf("record %s: %w", s.Name(), err)
		}
		resolved.ExpectedOutput = normalize(ns, resolved, dir, res.Output)
		resolved.ExpectedCode = res.Code
		slog.Debug("recorded scenario", "scenario", s.Name(), "code", res.Code)
		entries = append(entries, resolved.Entry(dir))
	}
	return entries, nil
}
