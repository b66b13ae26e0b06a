// Package harness runs scenarios against the hooks and checks the output
// byte for byte.
package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Arena hands out one scratch directory per run, each holding fresh copies
// of the samples. Runs never share files, so a hook that rewrites its input
// cannot affect a later run.
type Arena struct {
	root string
	keep bool
	n    int
}

// NewArena creates the session directory under parent, or under the system
// temp directory when parent is empty. With keep set, Close leaves the
// cells on disk for inspection.
func NewArena(parent string, keep bool) (*Arena, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("harness: create session parent: %w", err)
		}
	}
	root, err := os.MkdirTemp(parent, "hookwrap-session-")
	if err != nil {
		return nil, fmt.Errorf("harness: create session dir: %w", err)
	}
	slog.Debug("arena created", "root", root)
	return &Arena{root: root, keep: keep}, nil
}

// Root is the session directory.
func (a *Arena) Root() string {
	return a.root
}

// Cell creates the next numbered directory and writes the samples into it.
func (a *Arena) Cell() (string, error) {
	a.n++
	dir := filepath.Join(a.root, fmt.Sprintf("%04d", a.n))
	if err := scenario.WriteSamples(dir); err != nil {
		return "", fmt.Errorf("harness: prepare cell: %w", err)
	}
	return dir, nil
}

// Close removes the session directory and everything the tools left in it,
// such as oclint's .plist reports.
func (a *Arena) Close() error {
	if a.keep {
		slog.Info("keeping scratch directories", "root", a.root)
		return nil
	}
	if err := os.RemoveAll(a.root); err != nil {
		return fmt.Errorf("harness: remove session dir: %w", err)
	}
	return nil
}
