package execre

import (
	"strings"
	"unicode/utf8"
)

// escapeSource returns pattern as it would appear between the slashes of a
// regular expression literal: unescaped '/' becomes "\/" and the empty
// pattern becomes "(?:)".
func escapeSource(pattern string) string {
	if pattern == "" {
		return "(?:)"
	}
	if !strings.Contains(pattern, "/") {
		return pattern
	}

	var sb strings.Builder
	sb.Grow(len(pattern) + 4)
	backslashes := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			backslashes++
		case c == '/' && backslashes%2 == 0:
			sb.WriteString(`\/`)
			backslashes = 0
			continue
		default:
			backslashes = 0
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// ECMAScript character sets spelled as regexp/syntax class ranges.
const (
	// dotClass is what '.' matches: anything but a line terminator.
	dotClass = `[^\n\r\x{2028}\x{2029}]`
	// whitespaceRanges are the WhiteSpace and LineTerminator code points.
	whitespaceRanges = `\x09-\x0d\x20\x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
	// nonWhitespaceRanges is the complement of whitespaceRanges.
	nonWhitespaceRanges = `\x00-\x08\x0e-\x1f\x21-\x{9f}\x{a1}-\x{167f}\x{1681}-\x{1fff}\x{200b}-\x{2027}` +
		`\x{202a}-\x{202e}\x{2030}-\x{205e}\x{2060}-\x{2fff}\x{3001}-\x{fefe}\x{ff00}-\x{10ffff}`
)

// translateSource rewrites escaped ECMAScript pattern syntax into the
// regexp/syntax dialect:
//
//	\u{1F603}   -> \x{1F603}
//	\u00E9      -> \x{00E9}
//	\cJ         -> \x0A
//	(?<name>    -> (?P<name>
//	.           -> dotClass
//	\s \S       -> whitespaceRanges, nonWhitespaceRanges
//	[\b]        -> [\x08]
//
// Inside a character class '.' and "(?<" are literal. Every other escape
// is copied unchanged, including "\\".
func translateSource(src string) string {
	if !strings.ContainsAny(src, `\(.`) {
		return src
	}

	var sb strings.Builder
	sb.Grow(len(src) + 8)
	inClass := false
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i += translateEscape(&sb, src[i:], inClass)
			continue
		case inClass:
			if c == ']' {
				inClass = false
			} else if n := posixClassLen(src[i:]); n > 0 {
				sb.WriteString(src[i : i+n])
				i += n
				continue
			}
		case c == '[':
			inClass = true
			sb.WriteByte(c)
			i++
			// A ']' right after the opening bracket is a member.
			if i < len(src) && src[i] == '^' {
				sb.WriteByte('^')
				i++
			}
			if i < len(src) && src[i] == ']' {
				sb.WriteByte(']')
				i++
			}
			continue
		case c == '.':
			sb.WriteString(dotClass)
			i++
			continue
		case c == '(' && isNamedGroupOpen(src[i:]):
			sb.WriteString("(?P<")
			i += len("(?<")
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

// translateEscape writes the translation of the escape at the start of s
// (s[0] == '\\', len(s) >= 2) and returns how many bytes it consumed.
func translateEscape(sb *strings.Builder, s string, inClass bool) int {
	switch s[1] {
	case 'c':
		if len(s) > 2 && isASCIILetter(s[2]) {
			// Control escape: the letter's value modulo 32.
			v := s[2] % 32
			sb.WriteString(`\x`)
			sb.WriteByte(hexDigits[v>>4])
			sb.WriteByte(hexDigits[v&15])
			return 3
		}
	case 'u':
		if len(s) > 2 && s[2] == '{' {
			sb.WriteString(`\x`)
			return 2
		}
		n := 0
		for n < 4 && 2+n < len(s) && isHexDigit(s[2+n]) {
			n++
		}
		if n > 0 {
			sb.WriteString(`\x{`)
			sb.WriteString(s[2 : 2+n])
			sb.WriteByte('}')
			return 2 + n
		}
	case 's', 'S':
		ranges := whitespaceRanges
		if s[1] == 'S' {
			ranges = nonWhitespaceRanges
		}
		if inClass {
			sb.WriteString(ranges)
		} else {
			sb.WriteByte('[')
			sb.WriteString(ranges)
			sb.WriteByte(']')
		}
		return 2
	case 'b':
		if inClass {
			sb.WriteString(`\x08`)
			return 2
		}
	}

	// Copy the backslash and the whole escaped character.
	_, size := utf8.DecodeRuneInString(s[1:])
	sb.WriteString(s[:1+size])
	return 1 + size
}

// posixClassLen returns the length of the "[:name:]" at the start of s, or 0.
func posixClassLen(s string) int {
	if !strings.HasPrefix(s, "[:") {
		return 0
	}
	end := strings.Index(s[2:], ":]")
	if end < 0 {
		return 0
	}
	return 2 + end + 2
}

// isNamedGroupOpen reports whether s starts with "(?<" that opens a named
// group rather than a lookbehind.
func isNamedGroupOpen(s string) bool {
	if !strings.HasPrefix(s, "(?<") {
		return false
	}
	return len(s) > 3 && s[3] != '=' && s[3] != '!'
}

const hexDigits = "0123456789ABCDEF"

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := execre.QuoteMeta("a.b/c")
//	// escaped = `a\.b\/c`
//	re := execre.MustNew(escaped, "")
func QuoteMeta(s string) string {
	// Special characters that need escaping in regex
	const special = `\.+*?()|[]{}^$/`

	n := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}
