package diffreport

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// Snapshot holds the original content of files an in-place tool may rewrite.
type Snapshot struct {
	order  []string
	before map[string][]byte
	hashes map[string][32]byte
}

// Take reads every path and records its content and SHA-256 hash.
func Take(paths ...string) (*Snapshot, error) {
	s := &Snapshot{
		before: make(map[string][]byte, len(paths)),
		hashes: make(map[string][32]byte, len(paths)),
	}
	for _, p := range paths {
		if _, ok := s.before[p]; ok {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", p, err)
		}
		s.order = append(s.order, p)
		s.before[p] = data
		s.hashes[p] = sha256.Sum256(data)
	}
	return s, nil
}

// Original returns the recorded content of path.
func (s *Snapshot) Original(path string) []byte {
	return s.before[path]
}

// Current re-reads path and reports whether it differs from the snapshot.
func (s *Snapshot) Current(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, sha256.Sum256(data) != s.hashes[path], nil
}

// Report renders the report for path against its current content.
func (s *Snapshot) Report(path string) ([]byte, error) {
	after, changed, err := s.Current(path)
	if err != nil || !changed {
		return nil, err
	}
	return Report(path, s.before[path], after), nil
}

// Restore writes the recorded content back to every file that changed.
func (s *Snapshot) Restore() error {
	for _, p := range s.order {
		_, changed, err := s.Current(p)
		if err != nil {
			return err
		}
		if !changed {
			continue
		}
		if err := os.WriteFile(p, s.before[p], 0o644); err != nil {
			return fmt.Errorf("restore %s: %w", p, err)
		}
	}
	return nil
}
