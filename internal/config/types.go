package config

// Config represents the complete configuration of the alertrules command
type Config struct {
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Rules   RulesConfig   `yaml:"rules" mapstructure:"rules"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// MetricsConfig describes how metric names are qualified
type MetricsConfig struct {
	// Prefix is the raw registry prefix, e.g. "MyApp"
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
	// Descriptions is an optional description table file
	Descriptions string `yaml:"descriptions" mapstructure:"descriptions"`
}

// RulesConfig represents alert rule generation settings
type RulesConfig struct {
	File       string `yaml:"file" mapstructure:"file"`
	Group      string `yaml:"group" mapstructure:"group"`
	Format     string `yaml:"format" mapstructure:"format"`
	Output     string `yaml:"output" mapstructure:"output"`
	DocBaseURL string `yaml:"doc_base_url" mapstructure:"doc_base_url"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
