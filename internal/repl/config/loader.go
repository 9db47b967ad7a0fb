package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and validating config.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadResult contains the result of loading a configuration file.
// Errors holds non-fatal problems; the Config is always usable.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file. If the file does not
// exist, the defaults are returned with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("no config file, using defaults", zap.String("path", path))
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from YAML source. Invalid values are
// reset to their defaults and reported through LoadResult.Errors.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	if err := yaml.Unmarshal([]byte(source), result.Config); err != nil {
		// Unparseable config falls back to defaults entirely.
		result.Config = DefaultConfig()
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		return result, nil
	}

	l.validate(result)
	return result, nil
}

func (l *Loader) validate(result *LoadResult) {
	cfg := result.Config
	defaults := DefaultConfig()

	if cfg.Indent != IndentTabs && cfg.Indent != IndentSpaces {
		result.Errors = append(result.Errors,
			fmt.Errorf("invalid indent %q: want %q or %q", cfg.Indent, IndentTabs, IndentSpaces))
		cfg.Indent = defaults.Indent
	}
	if cfg.IndentWidth <= 0 {
		result.Errors = append(result.Errors,
			fmt.Errorf("invalid indentWidth %d: must be positive", cfg.IndentWidth))
		cfg.IndentWidth = defaults.IndentWidth
	}
	if cfg.CompletionLimit <= 0 {
		result.Errors = append(result.Errors,
			fmt.Errorf("invalid completionLimit %d: must be positive", cfg.CompletionLimit))
		cfg.CompletionLimit = defaults.CompletionLimit
	}
	if cfg.HistoryLimit <= 0 {
		result.Errors = append(result.Errors,
			fmt.Errorf("invalid historyLimit %d: must be positive", cfg.HistoryLimit))
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result.Errors = append(result.Errors,
			fmt.Errorf("invalid logLevel %q", cfg.LogLevel))
		cfg.LogLevel = defaults.LogLevel
	}

	for _, err := range result.Errors {
		l.logger.Warn("config problem", zap.Error(err))
	}
}
