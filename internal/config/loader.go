package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/songzhibin97/prommetrics/pkg/alertrules"
	"github.com/songzhibin97/prommetrics/pkg/log"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PROMMETRICS"

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			Format: "v2",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from file with environment variable overrides.
// An empty configFile skips the file.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(cfg, configFile); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func loadFromEnv(cfg *Config) {
	overrides := map[string]*string{
		"PREFIX":             &cfg.Metrics.Prefix,
		"DESCRIPTIONS":       &cfg.Metrics.Descriptions,
		"RULES_FILE":         &cfg.Rules.File,
		"RULES_GROUP":        &cfg.Rules.Group,
		"RULES_FORMAT":       &cfg.Rules.Format,
		"RULES_OUTPUT":       &cfg.Rules.Output,
		"RULES_DOC_BASE_URL": &cfg.Rules.DocBaseURL,
		"LOG_LEVEL":          &cfg.Logging.Level,
		"LOG_FORMAT":         &cfg.Logging.Format,
	}
	for key, target := range overrides {
		if v := os.Getenv(EnvPrefix + "_" + key); v != "" {
			*target = v
		}
	}
}

// Validate checks the values that can be checked without touching files.
func (c *Config) Validate() error {
	if _, err := alertrules.ParseVersion(c.Rules.Format); err != nil {
		return fmt.Errorf("invalid rules format: %w", err)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
