package config

// Default value constants.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	StrategyInProcess  = "in-process"
	StrategyEntryPoint = "entry-point"

	DefaultPreCommit = "pre-commit"

	// FileName is the settings file looked up in the working directory.
	FileName = ".hookwrap.yaml"
)

// Strategies lists every harness strategy name.
var Strategies = []string{StrategyInProcess, StrategyEntryPoint}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Tools: map[string]ToolConfig{},
		Harness: HarnessConfig{
			Strategies: []string{StrategyInProcess, StrategyEntryPoint},
		},
		Integration: IntegrationConfig{
			PreCommit: DefaultPreCommit,
			Repo:      LocalRepo,
		},
	}
}

// applyDefaults fills fields a loaded file left empty.
func applyDefaults(cfg *Config) {
	d := NewDefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
	if cfg.Tools == nil {
		cfg.Tools = d.Tools
	}
	if len(cfg.Harness.Strategies) == 0 {
		cfg.Harness.Strategies = d.Harness.Strategies
	}
	if cfg.Integration.PreCommit == "" {
		cfg.Integration.PreCommit = d.Integration.PreCommit
	}
	if cfg.Integration.Repo == "" {
		cfg.Integration.Repo = d.Integration.Repo
	}
}
