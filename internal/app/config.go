package app

import "errors"

// Config holds the command-line configuration for an App. Values left empty
// fall back to the run file named by ConfigPath.
type Config struct {
	ModelPath  string // .graphml file or directory
	Pattern    string // doublestar glob applied below ModelPath
	ConfigPath string // optional HCL run file

	OutputPath  string // merged GraphML
	SummaryPath string // YAML summary
	JSONPath    string // JSON model document

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" && cfg.ConfigPath == "" {
		return nil, errors.New("a model path or a run file is required")
	}
	return &cfg, nil
}
