package scenario

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// ProbeVersions asks each installed tool for its version. Tools that are
// not installed are left out of the map; a tool whose version output
// cannot be parsed is an error.
func ProbeVersions(ctx context.Context, r runner.Runner, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		ids = hook.IDs()
	}
	versions := make(map[string]string, len(ids))
	for _, id := range ids {
		t, err := hook.Lookup(id)
		if err != nil {
			return nil, err
		}
		if _, err := r.LookPath(t.Binary); err != nil {
			slog.Warn("tool not installed", "tool", id)
			continue
		}
		v, err := hook.New(t, r).Version(ctx)
		if err != nil {
			var pe *hook.ProblemError
			if errors.As(err, &pe) && errors.Is(pe, runner.ErrNotInstalled) {
				continue
			}
			return nil, err
		}
		slog.Debug("probed tool version", "tool", id, "version", v)
		versions[id] = v
	}
	return versions, nil
}
