package execre

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/coregx/execre/meta"
)

// Config controls compilation and instrumentation of a RegExp.
//
// Example:
//
//	config := execre.DefaultConfig()
//	config.Logger = slog.Default()
//	re, err := execre.NewSetWithConfig([]string{`\s+`, `[a-z]+`}, "gy", config)
type Config struct {
	// EnablePrefilter enables the literal prefix prefilter of pattern sets.
	// Default: true
	EnablePrefilter bool

	// MaxSetPrefixes limits the number of distinct literal prefixes the
	// prefilter indexes. Larger sets run without a prefilter.
	// Default: 256
	MaxSetPrefixes int

	// Logger receives debug records on compilation and cursor resets.
	// Default: a logger that discards everything.
	Logger *slog.Logger

	// MeterProvider supplies the exec counters.
	// Default: otel.GetMeterProvider()
	MeterProvider metric.MeterProvider
}

// DefaultConfig returns the configuration used by New and NewSet.
func DefaultConfig() Config {
	mc := meta.DefaultConfig()
	return Config{
		EnablePrefilter: mc.EnablePrefilter,
		MaxSetPrefixes:  mc.MaxLiterals,
	}
}

// metaConfig derives the automaton configuration for a flag set.
func (c Config) metaConfig(f flags) meta.Config {
	mc := meta.DefaultConfig()
	mc.EnablePrefilter = c.EnablePrefilter
	mc.MaxLiterals = c.MaxSetPrefixes
	mc.NFA.FoldCase = f.ignoreCase
	mc.NFA.Multiline = f.multiline
	return mc
}
