package meta

import (
	"bytes"
	"fmt"

	"github.com/coregx/execre/nfa"
	"github.com/coregx/execre/prefilter"
)

// Set is a compiled, ordered list of patterns searched together.
//
// Thread safety: a Set is immutable after Compile and may be searched from
// multiple goroutines.
type Set struct {
	vms       []*nfa.PikeVM
	prefixes  [][]byte // prefixes[i] is the literal prefix of pattern i, may be empty
	prefilter prefilter.Prefilter
	config    Config
}

// PatternError reports which pattern of a set failed to compile.
type PatternError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("[%d] %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Compile compiles every pattern with the same configuration.
// The first failing pattern aborts compilation with a *PatternError.
func Compile(patterns []string, config Config) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Set{
		vms:      make([]*nfa.PikeVM, len(patterns)),
		prefixes: make([][]byte, len(patterns)),
		config:   config,
	}
	for i, pattern := range patterns {
		n, err := nfa.Compile(pattern, config.NFA)
		if err != nil {
			return nil, &PatternError{Index: i, Err: err}
		}
		s.vms[i] = nfa.NewPikeVM(n)
		if prefix := n.LiteralPrefix(); prefix != "" {
			s.prefixes[i] = []byte(prefix)
		}
	}

	if config.EnablePrefilter {
		s.prefilter = prefilter.New(s.prefixes, config.MaxLiterals)
	}
	return s, nil
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.vms)
}

// NFA returns the compiled automaton of pattern i.
func (s *Set) NFA(i int) *nfa.NFA {
	return s.vms[i].NFA()
}

// HasPrefilter reports whether searches skip ahead with a literal prefilter.
func (s *Set) HasPrefilter() bool {
	return s.prefilter != nil
}

// MatchAt searches every pattern from offset at and returns the candidates
// indexed by pattern. Candidate i is nil when pattern i has no match that
// could win over the candidates of patterns 0..i-1.
//
// Patterns are searched in order. A pattern j only needs to start strictly
// before the best start found by patterns 0..j-1, so each search is bounded
// by it. As a consequence the non-nil candidates have strictly decreasing
// start offsets.
//
// When anchored is true every candidate starts exactly at 'at'.
func (s *Set) MatchAt(haystack []byte, at int, anchored bool) []*nfa.MatchWithCaptures {
	candidates := make([]*nfa.MatchWithCaptures, len(s.vms))
	if at < 0 || at > len(haystack) {
		return candidates
	}

	start := at
	if s.prefilter != nil && !anchored {
		start = s.prefilter.Find(haystack, at)
		if start < 0 {
			return candidates
		}
	}

	best := -1
	for i, vm := range s.vms {
		if best >= 0 && best <= start {
			// Nothing can start before the earliest viable position.
			break
		}
		from, ok := s.entry(i, haystack, start, anchored)
		if !ok {
			continue
		}
		lastStart := -1
		if best >= 0 {
			lastStart = best - 1
			if from > lastStart {
				continue
			}
		}
		m := vm.SearchAt(haystack, from, anchored, lastStart)
		if m == nil {
			continue
		}
		candidates[i] = m
		best = m.Start
	}
	return candidates
}

// entry returns the offset pattern i is searched from, or false when its
// literal prefix rules out any match.
func (s *Set) entry(i int, haystack []byte, start int, anchored bool) (int, bool) {
	prefix := s.prefixes[i]
	if len(prefix) == 0 {
		return start, true
	}
	if anchored {
		return start, bytes.HasPrefix(haystack[start:], prefix)
	}
	idx := bytes.Index(haystack[start:], prefix)
	if idx < 0 {
		return 0, false
	}
	return start + idx, true
}
