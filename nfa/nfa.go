package nfa

import (
	"fmt"
	"math"
	"regexp/syntax"
)

// Config controls how a pattern is parsed into a program.
type Config struct {
	// FoldCase compiles the pattern case-insensitively.
	FoldCase bool

	// Multiline makes ^ and $ match at line boundaries instead of only at
	// the ends of the haystack.
	Multiline bool
}

// NFA is a compiled pattern. It is immutable and safe for concurrent use.
type NFA struct {
	pattern  string
	prog     *syntax.Prog
	numSlots int      // capture slots, two per group including group 0
	names    []string // names[i] is the name of group i, "" when unnamed
	prefix   string   // literal every match must start with, may be empty
}

// Compile parses pattern with Perl syntax and compiles it to a program.
func Compile(pattern string, config Config) (*NFA, error) {
	flags := syntax.Perl
	if config.FoldCase {
		flags |= syntax.FoldCase
	}
	if config.Multiline {
		flags &^= syntax.OneLine
	}

	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: fmt.Errorf("%w: %w", ErrInvalidPattern, err)}
	}

	names := re.CapNames()
	if err := checkNames(names); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	maxCap := re.MaxCap()
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: fmt.Errorf("%w: %w", ErrInvalidPattern, err)}
	}
	if len(prog.Inst) > math.MaxUint32 {
		return nil, &CompileError{Pattern: pattern, Err: ErrTooComplex}
	}

	prefix, _ := prog.Prefix()

	return &NFA{
		pattern:  pattern,
		prog:     prog,
		numSlots: 2 * (maxCap + 1),
		names:    names,
		prefix:   prefix,
	}, nil
}

func checkNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names[1:] {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Pattern returns the source text the NFA was compiled from.
func (n *NFA) Pattern() string {
	return n.pattern
}

// NumCaptures returns the number of capture groups including group 0.
func (n *NFA) NumCaptures() int {
	return n.numSlots / 2
}

// SubexpNames returns the group names indexed by capture slot.
// Element 0 (the whole match) is always "".
func (n *NFA) SubexpNames() []string {
	return n.names
}

// HasNamedGroups reports whether any group of the pattern is named.
func (n *NFA) HasNamedGroups() bool {
	for _, name := range n.names[1:] {
		if name != "" {
			return true
		}
	}
	return false
}

// LiteralPrefix returns the literal that every match must begin with.
// It is empty when the pattern can start with a non-literal, when it is case
// folded or when it can match the empty string.
func (n *NFA) LiteralPrefix() string {
	return n.prefix
}

// States returns the number of program instructions.
func (n *NFA) States() int {
	return len(n.prog.Inst)
}
