// Package execre provides regular expressions with the stateful exec
// contract of ECMAScript RegExp.prototype.exec, including pattern sets that
// report which of an ordered list of patterns matched.
//
// Patterns use ECMAScript surface syntax translated to Go's Perl syntax, and
// are matched leftmost-first over UTF-8 by a Pike VM. Text subjects are
// indexed in UTF-16 code units, exactly as JavaScript reports string
// offsets; binary subjects are indexed in bytes.
//
// Basic usage:
//
//	re := execre.MustNew(`ab*`, "g")
//	for {
//	    m, err := re.Exec("abbcdefabh")
//	    if err != nil || m == nil {
//	        break
//	    }
//	    fmt.Println(m.Text(), re.LastIndex()) // "abb" 3, then "ab" 9
//	}
//
// Pattern sets:
//
//	router, _ := execre.NewSet([]string{`/about-us/?`, `/blog/(?<slug>[0-9a-z-]+)/?`, `/blog/?`, `/`}, "y")
//	m, _ := router.Exec("/blog")
//	idx, _ := m.Pattern() // 2
//
// Flags:
//   - g: global, exec continues from LastIndex
//   - i: case-insensitive
//   - m: multiline, ^ and $ match at line boundaries
//   - y: sticky, the match must start exactly at LastIndex
//   - u: accepted for compatibility, Unicode matching is always on
//
// A RegExp owns a mutable cursor and must not be used from several
// goroutines at once. Clone returns an independent cursor over the same
// compiled patterns.
package execre

import (
	"errors"
	"strings"

	"github.com/coregx/execre/meta"
)

// RegExp is a compiled pattern or pattern set plus its lastIndex cursor.
type RegExp struct {
	*program
	cursor cursor
	cache  textCache
}

// program is the immutable part of a RegExp shared with its clones.
type program struct {
	set             *meta.Set
	sources         []string
	internalSources []string
	names           [][]string // names[i] maps capture slot to group name for pattern i
	flags           flags
	isSet           bool
	telemetry       *telemetry
}

// New compiles a single pattern with the given flags.
//
// Example:
//
//	re, err := execre.New(`quick\s(brown).+?(jumps)`, "ig")
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(pattern, flagString string) (*RegExp, error) {
	return NewWithConfig(pattern, flagString, DefaultConfig())
}

// NewSet compiles an ordered list of patterns matched together. When
// several patterns match at the same leftmost position the one listed
// first wins, regardless of match length.
func NewSet(patterns []string, flagString string) (*RegExp, error) {
	return NewSetWithConfig(patterns, flagString, DefaultConfig())
}

// MustNew is like New but panics if the pattern cannot be compiled.
//
// Example:
//
//	var word = execre.MustNew(`\w+`, "g")
func MustNew(pattern, flagString string) *RegExp {
	re, err := New(pattern, flagString)
	if err != nil {
		panic(err.Error())
	}
	return re
}

// MustNewSet is like NewSet but panics if a pattern cannot be compiled.
func MustNewSet(patterns []string, flagString string) *RegExp {
	re, err := NewSet(patterns, flagString)
	if err != nil {
		panic(err.Error())
	}
	return re
}

// NewWithConfig compiles a single pattern with a custom configuration.
func NewWithConfig(pattern, flagString string, config Config) (*RegExp, error) {
	return compile([]string{pattern}, flagString, config, false)
}

// NewSetWithConfig compiles a pattern set with a custom configuration.
func NewSetWithConfig(patterns []string, flagString string, config Config) (*RegExp, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Index: -1, Err: ErrEmptySet}
	}
	return compile(patterns, flagString, config, true)
}

func compile(patterns []string, flagString string, config Config, isSet bool) (*RegExp, error) {
	f, err := parseFlags(flagString)
	if err != nil {
		return nil, &CompileError{Index: -1, Err: err}
	}

	p := &program{
		sources:         make([]string, len(patterns)),
		internalSources: make([]string, len(patterns)),
		names:           make([][]string, len(patterns)),
		flags:           f,
		isSet:           isSet,
	}
	for i, pattern := range patterns {
		p.sources[i] = escapeSource(pattern)
		p.internalSources[i] = translateSource(p.sources[i])
	}

	set, err := meta.Compile(p.internalSources, config.metaConfig(f))
	if err != nil {
		return nil, wrapSetError(p, err)
	}
	p.set = set
	for i := range patterns {
		p.names[i] = set.NFA(i).SubexpNames()
	}

	m := modeOf(f)
	p.telemetry = newTelemetry(config, m)
	p.telemetry.logger.Debug("execre: compiled",
		"source", p.source(),
		"flags", f.String(),
		"patterns", len(patterns),
		"prefilter", set.HasPrefilter())

	return &RegExp{program: p, cursor: cursor{mode: m}}, nil
}

// wrapSetError attributes a meta compilation error to its pattern.
func wrapSetError(p *program, err error) error {
	var perr *meta.PatternError
	if !errors.As(err, &perr) {
		return &CompileError{Index: -1, Err: err}
	}
	index := -1
	if p.isSet {
		index = perr.Index
	}
	return compileError(p.sources[perr.Index], index, perr.Err)
}

// Clone returns a RegExp sharing the compiled patterns with a fresh cursor.
// Clones may be used concurrently with each other.
func (re *RegExp) Clone() *RegExp {
	return &RegExp{program: re.program, cursor: cursor{mode: re.cursor.mode}}
}

// source returns the escaped source, alternatives joined by '|' for sets.
func (p *program) source() string {
	return strings.Join(p.sources, "|")
}

// Source returns the pattern as it would appear in a regular expression
// literal. For a set the sources are joined with '|'.
func (re *RegExp) Source() string {
	return re.source()
}

// Sources returns the source of every pattern of the set. A single pattern
// RegExp returns a one element slice.
func (re *RegExp) Sources() []string {
	return append([]string(nil), re.sources...)
}

// InternalSource returns the pattern text that was compiled, after
// ECMAScript escapes were translated. For a set the texts are joined
// with '|'.
func (re *RegExp) InternalSource() string {
	return strings.Join(re.internalSources, "|")
}

// InternalSources returns the compiled text of every pattern of the set.
func (re *RegExp) InternalSources() []string {
	return append([]string(nil), re.internalSources...)
}

// Flags returns the flags in canonical "gimuy" order. "u" is always present.
func (re *RegExp) Flags() string {
	return re.flags.String()
}

// String returns the regular expression literal, "/source/flags".
func (re *RegExp) String() string {
	return "/" + re.source() + "/" + re.flags.String()
}

// Global reports whether the g flag is set.
func (re *RegExp) Global() bool { return re.flags.global }

// IgnoreCase reports whether the i flag is set.
func (re *RegExp) IgnoreCase() bool { return re.flags.ignoreCase }

// Multiline reports whether the m flag is set.
func (re *RegExp) Multiline() bool { return re.flags.multiline }

// Sticky reports whether the y flag is set.
func (re *RegExp) Sticky() bool { return re.flags.sticky }

// Unicode always reports true.
func (re *RegExp) Unicode() bool { return true }

// NumPatterns returns the number of patterns, 1 unless the RegExp is a set.
func (re *RegExp) NumPatterns() int {
	return re.set.Len()
}

// IsSet reports whether the RegExp was created by NewSet.
func (re *RegExp) IsSet() bool {
	return re.isSet
}

// LastIndex returns the native offset the next global or sticky exec
// starts from.
func (re *RegExp) LastIndex() int {
	return re.cursor.lastIndex
}

// SetLastIndex moves the cursor. Negative values are stored as 0.
func (re *RegExp) SetLastIndex(n int) {
	re.cursor.set(n)
}

// SubexpNames returns the capture group names of pattern i, indexed by
// group number. Element 0 and unnamed groups are "".
func (re *RegExp) SubexpNames(i int) []string {
	return append([]string(nil), re.names[i]...)
}

// NumSubexp returns the number of capture groups of pattern i, not
// counting the whole match.
func (re *RegExp) NumSubexp(i int) int {
	return len(re.names[i]) - 1
}
