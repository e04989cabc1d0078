package execre

import (
	"errors"
	"fmt"

	"github.com/coregx/execre/nfa"
)

// Common errors
var (
	// ErrInvalidFlag indicates an unknown or repeated character in a flag string
	ErrInvalidFlag = errors.New("invalid flag")

	// ErrEmptySet indicates NewSet was given no patterns
	ErrEmptySet = errors.New("empty pattern set")

	// ErrInvalidPattern indicates the pattern syntax is invalid or unsupported
	ErrInvalidPattern = nfa.ErrInvalidPattern

	// ErrDuplicateName indicates two capture groups of one pattern share a name
	ErrDuplicateName = nfa.ErrDuplicateName

	// ErrInvalidUTF8 indicates a text subject is not valid UTF-8
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrUnpairedSurrogate indicates UTF-16 input with a lone surrogate
	ErrUnpairedSurrogate = errors.New("unpaired surrogate")

	// ErrUnsupportedSubject indicates ExecValue got a value it cannot coerce
	ErrUnsupportedSubject = errors.New("unsupported subject type")
)

// CompileError reports a pattern or flag string that could not be compiled.
//
// For a pattern set, Index is the position of the failing pattern and the
// message is prefixed with "[Index]". Index is -1 otherwise.
type CompileError struct {
	Pattern string
	Index   int
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	var msg string
	if e.Pattern != "" {
		msg = fmt.Sprintf("execre: Compile(`%s`): %v", e.Pattern, e.Err)
	} else {
		msg = fmt.Sprintf("execre: %v", e.Err)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("[%d] %s", e.Index, msg)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ConversionError reports a subject that could not be turned into a UTF-8
// haystack. Offset is the position of the offending unit in the input's
// own indexing (bytes for strings, code units for UTF-16).
type ConversionError struct {
	Offset int
	Err    error
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	return fmt.Sprintf("execre: cannot convert subject: %v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying error
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// compileError converts an automaton error into a *CompileError.
func compileError(pattern string, index int, err error) *CompileError {
	var nerr *nfa.CompileError
	if errors.As(err, &nerr) {
		err = nerr.Err
	}
	return &CompileError{Pattern: pattern, Index: index, Err: err}
}
