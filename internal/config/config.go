// Package config provides configuration structures and loading for sizereport.
package config

// Config represents the complete application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// InputConfig describes how tree dumps are read.
type InputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`     // auto, yaml or json
	Selector string `yaml:"selector" mapstructure:"selector"` // gjson path into a json dump
}

// ReportConfig controls how the type-size report is produced and where it goes.
type ReportConfig struct {
	Walk    string `yaml:"walk" mapstructure:"walk"`       // recursive or iterative
	Emit    string `yaml:"emit" mapstructure:"emit"`       // stdout or log
	Summary bool   `yaml:"summary" mapstructure:"summary"` // print totals after the table
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// Report destinations.
const (
	EmitStdout = "stdout"
	EmitLog    = "log"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: "auto",
		},
		Report: ReportConfig{
			Walk:    "recursive",
			Emit:    EmitStdout,
			Summary: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Overrides holds CLI flag values that replace configuration file values.
// Zero values leave the configuration untouched.
type Overrides struct {
	LogLevel  string
	LogFormat string
	Format    string
	Selector  string
	Walk      string
	Emit      string
	Summary   bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Format != "" {
		c.Input.Format = o.Format
	}
	if o.Selector != "" {
		c.Input.Selector = o.Selector
	}
	if o.Walk != "" {
		c.Report.Walk = o.Walk
	}
	if o.Emit != "" {
		c.Report.Emit = o.Emit
	}
	if o.Summary {
		c.Report.Summary = true
	}
}
