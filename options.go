package synthpop

import (
	"go.uber.org/zap"

	"github.com/andreiashu/synthpop/metrics"
	"github.com/andreiashu/synthpop/schema"
)

// SchemaRule assigns a schema to the entries whose base name, without a
// compression suffix, matches Pattern (path.Match syntax).
type SchemaRule struct {
	Pattern string
	Schema  *schema.Schema
}

// DatasetConfig contains configuration options for opening a dataset.
type DatasetConfig struct {
	Logger   *zap.Logger      // default: no-op
	Metrics  *metrics.Metrics // default: none
	Schemas  []SchemaRule     // checked in order before the built-in rules
	Defaults bool             // apply the built-in ASPR rules (default: true)
}

// Option is a functional option for configuring a Dataset.
type Option func(*DatasetConfig)

// WithLogger sets the logger entry skips and read failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *DatasetConfig) {
		c.Logger = l
	}
}

// WithMetrics sets the counters updated while reading.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *DatasetConfig) {
		c.Metrics = m
	}
}

// WithSchema decodes entries matching pattern with s. Rules are tried in
// the order they are given.
func WithSchema(pattern string, s *schema.Schema) Option {
	return func(c *DatasetConfig) {
		c.Schemas = append(c.Schemas, SchemaRule{Pattern: pattern, Schema: s})
	}
}

// WithoutDefaultSchemas disables the built-in ASPR rules, so only entries
// matched by WithSchema are read.
func WithoutDefaultSchemas() Option {
	return func(c *DatasetConfig) {
		c.Defaults = false
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *DatasetConfig {
	return &DatasetConfig{
		Logger:   zap.NewNop(),
		Defaults: true,
	}
}
