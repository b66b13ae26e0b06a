package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PreCommitConfigFile is the file pre-commit reads in a repository root.
const PreCommitConfigFile = ".pre-commit-config.yaml"

// LocalRepo is the repo value of hooks defined in the configuration itself.
const LocalRepo = "local"

// PreCommitConfig is the part of .pre-commit-config.yaml hookwrap reads and
// writes.
type PreCommitConfig struct {
	Repos []PreCommitRepo `yaml:"repos"`
}

// PreCommitRepo is one entry of repos.
type PreCommitRepo struct {
	Repo  string          `yaml:"repo"`
	Rev   string          `yaml:"rev,omitempty"`
	Hooks []PreCommitHook `yaml:"hooks"`
}

// PreCommitHook is one hook of a repo.
type PreCommitHook struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name,omitempty"`
	Entry    string   `yaml:"entry,omitempty"`
	Language string   `yaml:"language,omitempty"`
	Args     []string `yaml:"args,omitempty"`
	Files    string   `yaml:"files,omitempty"`
}

// LocalHook configures id as a local system hook running entry.
func LocalHook(id, entry string, args []string) PreCommitConfig {
	return PreCommitConfig{Repos: []PreCommitRepo{{
		Repo: LocalRepo,
		Hooks: []PreCommitHook{{
			ID:       id,
			Name:     id,
			Entry:    entry,
			Language: "system",
			Args:     args,
		}},
	}}}
}

// RemoteHook configures id from a published hook repository at rev.
func RemoteHook(repo, rev, id string, args []string) PreCommitConfig {
	return PreCommitConfig{Repos: []PreCommitRepo{{
		Repo:  repo,
		Rev:   rev,
		Hooks: []PreCommitHook{{ID: id, Args: args}},
	}}}
}

// Hooks returns every hook of every repo in file order.
func (c PreCommitConfig) Hooks() []PreCommitHook {
	var out []PreCommitHook
	for _, r := range c.Repos {
		out = append(out, r.Hooks...)
	}
	return out
}

// Marshal encodes c as YAML with two space indentation.
func (c PreCommitConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode pre-commit config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode pre-commit config: %w", err)
	}
	return buf.Bytes(), nil
}

// ParsePreCommitConfig decodes a .pre-commit-config.yaml document.
func ParsePreCommitConfig(data []byte) (PreCommitConfig, error) {
	var c PreCommitConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return PreCommitConfig{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if len(c.Hooks()) == 0 {
		return PreCommitConfig{}, ErrNoPreCommitHooks
	}
	return c, nil
}

// LoadPreCommitConfig reads and parses the file at path.
func LoadPreCommitConfig(path string) (PreCommitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PreCommitConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := ParsePreCommitConfig(data)
	if err != nil {
		return PreCommitConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
