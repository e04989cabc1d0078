// Package nfa provides the matching automaton behind execre: a Pike VM
// executing regexp/syntax programs over UTF-8 byte haystacks.
//
// The VM always receives the full haystack plus a start offset, so
// zero-width assertions such as ^, $ and \b see the bytes before the start
// offset. Matching follows leftmost-first (Perl) semantics.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidPattern indicates the regex pattern is invalid or unsupported
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrDuplicateName indicates two capture groups of one pattern share a name
	ErrDuplicateName = errors.New("duplicate capture group name")

	// ErrTooComplex indicates the compiled program exceeds the VM limits
	ErrTooComplex = errors.New("pattern too complex")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
