// Package meta coordinates the automata of a pattern set.
//
// A Set compiles one Pike VM per pattern and answers, for a haystack and a
// start offset, the earliest match of every pattern that can still compete
// for the leftmost start. A literal prefilter built from the pattern
// prefixes skips ahead to the first viable start when every pattern begins
// with a literal.
//
// The Set does not decide the winner. It reports candidates indexed by
// pattern, and the caller applies its own tie-break.
package meta

import "github.com/coregx/execre/nfa"

// Config controls set compilation and search.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always run every automaton from the start offset
//	set, err := meta.Compile([]string{"a+", "b"}, config)
type Config struct {
	// NFA is applied to every pattern of the set.
	NFA nfa.Config

	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of distinct prefixes indexed by the
	// prefilter. Sets with more prefixes run without one.
	// Default: 256
	MaxLiterals int
}

// DefaultConfig returns a configuration with the prefilter enabled.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MaxLiterals:     256,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxLiterals: 1 to 1,000 (only checked when the prefilter is enabled)
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "execre: invalid config: " + e.Field + ": " + e.Message
}
