package scenario

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// Sample file names. Expected outputs are computed against their exact
// bytes, so the embedded files must never change.
const (
	OkC     = "ok.c"
	OkCpp   = "ok.cpp"
	ErrC    = "err.c"
	ErrCpp  = "err.cpp"
	UncCfg  = "uncrustify_defaults.cfg"
	dirName = "samples"
)

// SampleFiles lists the source samples: the clean ones first, then the
// flawed ones, each in C and C++.
var SampleFiles = []string{OkC, OkCpp, ErrC, ErrCpp}

//go:embed samples
var samples embed.FS

// Sample returns the content of an embedded sample.
func Sample(name string) ([]byte, error) {
	data, err := samples.ReadFile(dirName + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", name, err)
	}
	return data, nil
}

// Flawed reports whether name is one of the samples tools complain about.
func Flawed(name string) bool {
	b := base(name)
	return b == ErrC || b == ErrCpp
}

// WriteSamples materializes every sample, including the uncrustify
// configuration, into dir.
func WriteSamples(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sample dir: %w", err)
	}
	for _, name := range append(SampleFiles[:len(SampleFiles):len(SampleFiles)], UncCfg) {
		data, err := Sample(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write sample %s: %w", name, err)
		}
	}
	return nil
}
