// Package config defines process configuration and its layered loading.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/braincap/internal/domain/model"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DefaultLanguage is used when an assessment names no language.
	DefaultLanguage string `koanf:"default_language"`

	// WorkerCount bounds how many assessments of a batch are scored at once.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the submission IDs remembered per batch. 0 is unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// RulesFile optionally replaces the embedded advice rules.
	RulesFile string `koanf:"rules_file"`

	// TablesFile optionally replaces the embedded item and benchmark tables.
	TablesFile string `koanf:"tables_file"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsTextfile, when set, receives a metrics snapshot after each command.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config holding the defaults. The context is reserved for
// future loaders.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        LogFormatText,
		DefaultLanguage:  string(model.DefaultLanguage),
		WorkerCount:      runtime.NumCPU(),
		DedupeSize:       10_000,
		MetricsNamespace: "braincap",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	switch model.ParseLanguage(c.DefaultLanguage) {
	case model.LanguageJapanese, model.LanguageEnglish:
	default:
		return fmt.Errorf("%w: default_language %q must be ja or en", ErrInvalidConfig, c.DefaultLanguage)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	return nil
}
