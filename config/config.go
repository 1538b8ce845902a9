package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// EnvPrefix prefixes the environment variables overriding the configuration,
// e.g. TCGDEX_API_LANG=fr
const EnvPrefix = "TCGDEX"

// Load loads the configuration from defaults, the config file and the
// environment. A missing config file is only an error when configPath is set.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tcgdex"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tcgdex/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", tcgdex.DefaultBaseURL)
	v.SetDefault("api.lang", string(tcgdex.EN))
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.user_agent", tcgdex.DefaultUserAgent)

	// Output defaults
	v.SetDefault("output.format", "tree")
	v.SetDefault("output.show_details", false)
	v.SetDefault("output.concurrency", tcgdex.DefaultConcurrency)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	lang, err := tcgdex.ParseLang(cfg.API.Lang)
	if err != nil {
		return fmt.Errorf("invalid api.lang: %s", cfg.API.Lang)
	}
	cfg.API.Lang = lang.String()

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	// Validate output format
	validOutputs := map[string]bool{
		"tree": true,
		"json": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output.format: %s (must be 'tree' or 'json')", cfg.Output.Format)
	}

	if cfg.Output.Concurrency <= 0 {
		return fmt.Errorf("output.concurrency must be positive, got %d", cfg.Output.Concurrency)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
