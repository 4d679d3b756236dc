// Package config loads the settings of the synthpop commands from
// environment variables, applying defaults and validating the result.
package config

// Config holds all command configuration.
type Config struct {
	Data    DataConfig
	Summary SummaryConfig
	Logging LoggingConfig
}

// DataConfig locates the dataset.
type DataConfig struct {
	// Path is the dataset directory or archive. Empty means the library
	// default data path.
	Path string `env:"ASPR_DATA_PATH"`

	// SchemaFile is an optional YAML schema applied to every entry instead of
	// the built-in ASPR person schema.
	SchemaFile string `env:"ASPR_SCHEMA_FILE"`

	// SchemaPattern selects the entries SchemaFile applies to (default: *)
	SchemaPattern string `env:"ASPR_SCHEMA_PATTERN" default:"*"`
}

// SummaryConfig controls the aspr-summary report.
type SummaryConfig struct {
	// Level is the FIPS level records are counted at: state, county, tract
	// or block (default: state)
	Level string `env:"SUMMARY_LEVEL" default:"state"`

	// Prefixes restricts the report to these comma-separated FIPS codes.
	Prefixes []string `env:"SUMMARY_PREFIXES"`

	// Limit is the maximum number of rows printed, 0 for all (default: 0)
	Limit int `env:"SUMMARY_LIMIT" default:"0"`

	// Metrics prints the read counters after the report (default: false)
	Metrics bool `env:"SUMMARY_METRICS" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
