// Package prefilter provides fast candidate filtering for pattern-set search
// using the literal prefixes of the patterns.
//
// When every pattern of a set must begin with a non-empty literal, no match
// can start before the leftmost occurrence of any of those literals. The
// prefilter bounds that occurrence from below with an Aho-Corasick automaton
// so the automata of the set only run from the first viable position.
//
// Example usage:
//
//	pf := prefilter.New([][]byte{[]byte("null"), []byte("true")}, prefilter.DefaultMaxLiterals)
//	pos := pf.Find([]byte(`{"a": true}`), 0)
//	// pos == 6
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// DefaultMaxLiterals is the largest literal count a prefilter is built for.
const DefaultMaxLiterals = 256

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
type Prefilter interface {
	// Find returns a position p >= start such that no literal occurs
	// between start and p, or -1 if no literal occurs at or after start.
	// p is not necessarily the start of an occurrence.
	//
	// A candidate does NOT guarantee a full match; the caller must verify the
	// position with the automaton.
	Find(haystack []byte, start int) int

	// Len returns the number of distinct literals.
	Len() int
}

// New builds a prefilter over literals. It returns nil when no useful
// prefilter exists: an empty or missing literal means some pattern can start
// anywhere, and more than maxLiterals literals is not worth indexing.
func New(literals [][]byte, maxLiterals int) Prefilter {
	if len(literals) == 0 || len(literals) > maxLiterals {
		return nil
	}
	uniq := make([][]byte, 0, len(literals))
	for _, lit := range literals {
		if len(lit) == 0 {
			return nil
		}
		if !containsLiteral(uniq, lit) {
			uniq = append(uniq, lit)
		}
	}

	if len(uniq) == 1 {
		return &memmemPrefilter{needle: uniq[0]}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range uniq {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	maxLen := 0
	for _, lit := range uniq {
		maxLen = max(maxLen, len(lit))
	}
	return &ahoCorasickPrefilter{auto: auto, literals: uniq, maxLen: maxLen}
}

func containsLiteral(set [][]byte, lit []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, lit) {
			return true
		}
	}
	return false
}

// memmemPrefilter handles a single literal with bytes.Index.
type memmemPrefilter struct {
	needle []byte
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) Len() int {
	return 1
}

// ahoCorasickPrefilter handles several literals with one automaton pass.
//
// The automaton reports the occurrence that ends first, which need not be
// the one that starts first: "abcd" and "bc" in "xabcd" report "bc".
// Every occurrence ends at or after that end, so none starts before
// end-maxLen.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	literals [][]byte
	maxLen   int
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return max(start, m.End-p.maxLen)
}

func (p *ahoCorasickPrefilter) Len() int {
	return len(p.literals)
}
