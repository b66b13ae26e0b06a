package config

// Config is the root of .hookwrap.yaml.
type Config struct {
	Log         LogConfig             `yaml:"log"`
	Tools       map[string]ToolConfig `yaml:"tools,omitempty"`
	Harness     HarnessConfig         `yaml:"harness"`
	Integration IntegrationConfig     `yaml:"integration"`
}

// LogConfig controls the diagnostic log written to stderr.
type LogConfig struct {
	Level   string `yaml:"level"`  // debug, info, warn, error
	Format  string `yaml:"format"` // text, json
	NoColor bool   `yaml:"no_color"`
}

// ToolConfig overrides how a wrapped binary is found.
type ToolConfig struct {
	// Path replaces the $PATH lookup of the tool's binary.
	Path string `yaml:"path"`
}

// HarnessConfig configures hookwrap verify.
type HarnessConfig struct {
	// Strategies lists how scenarios are executed: in-process, entry-point.
	Strategies []string `yaml:"strategies"`
	// SessionDir is the parent of the scratch directories; empty means the
	// system temp directory.
	SessionDir  string `yaml:"session_dir"`
	KeepScratch bool   `yaml:"keep_scratch"`
	// Journal is the SQLite file outcomes are recorded in; empty disables it.
	Journal  string `yaml:"journal"`
	FailFast bool   `yaml:"fail_fast"`
	// HookCommand runs the entry point strategy through one program, with
	// the hook id as its first argument, instead of "<id>-hook".
	HookCommand string `yaml:"hook_command"`
}

// IntegrationConfig configures pre-commit scenarios.
type IntegrationConfig struct {
	Enabled   bool   `yaml:"enabled"`
	PreCommit string `yaml:"pre_commit"`
	// Repo is "local" or the URL of a published hook repository.
	Repo string `yaml:"repo"`
	Rev  string `yaml:"rev"`
	// Fixture is a JSON fixture file; empty uses the bundled one.
	Fixture string `yaml:"fixture"`
	// RepoDir replaces the {repo_dir} placeholder.
	RepoDir string `yaml:"repo_dir"`
}

// ToolPaths returns the binary overrides keyed by executable name.
func (c *Config) ToolPaths(binary func(id string) string) map[string]string {
	paths := make(map[string]string, len(c.Tools))
	for id, t := range c.Tools {
		if t.Path != "" {
			paths[binary(id)] = t.Path
		}
	}
	return paths
}
