package execre

import (
	"fmt"
	"strings"
)

// flags is the parsed form of a flag string.
type flags struct {
	global     bool
	ignoreCase bool
	multiline  bool
	sticky     bool
}

// parseFlags accepts any combination of "g", "i", "m", "u" and "y".
// The "u" flag is always in effect and only accepted for compatibility.
func parseFlags(s string) (flags, error) {
	var f flags
	var seen [128]bool
	for _, c := range s {
		var target *bool
		switch c {
		case 'g':
			target = &f.global
		case 'i':
			target = &f.ignoreCase
		case 'm':
			target = &f.multiline
		case 'y':
			target = &f.sticky
		case 'u':
		default:
			return flags{}, fmt.Errorf("%w %q in %q", ErrInvalidFlag, c, s)
		}
		if seen[c] {
			return flags{}, fmt.Errorf("%w: %q repeated in %q", ErrInvalidFlag, c, s)
		}
		seen[c] = true
		if target != nil {
			*target = true
		}
	}
	return f, nil
}

// String returns the canonical flag string in "gimuy" order.
func (f flags) String() string {
	var sb strings.Builder
	if f.global {
		sb.WriteByte('g')
	}
	if f.ignoreCase {
		sb.WriteByte('i')
	}
	if f.multiline {
		sb.WriteByte('m')
	}
	sb.WriteByte('u')
	if f.sticky {
		sb.WriteByte('y')
	}
	return sb.String()
}

// stateful reports whether exec reads and writes lastIndex.
func (f flags) stateful() bool {
	return f.global || f.sticky
}
