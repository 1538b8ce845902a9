package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Output  OutputConfig  `mapstructure:"output"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds TCGdex API connection details
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Lang      string        `mapstructure:"lang"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OutputConfig contains rendering settings
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	ShowDetails bool   `mapstructure:"show_details"`
	// Concurrency bounds the detail requests made by --details
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains client-side filter settings
type FilterConfig struct {
	// DefaultExpression applies to list commands run without --where or --preset
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// PresetExpressions returns the preset expressions keyed by name
func (f FilterConfig) PresetExpressions() map[string]string {
	exprs := make(map[string]string, len(f.Presets))
	for name, preset := range f.Presets {
		exprs[name] = preset.Expression
	}
	return exprs
}
