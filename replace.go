package execre

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/execre/nfa"
)

// Search returns the UTF-16 offset of the first match of s, or -1.
// The search starts at 0 and is anchored there when the y flag is set.
// LastIndex is neither used nor changed.
func (re *RegExp) Search(s string) (int, error) {
	t, err := re.cache.get(s)
	if err != nil {
		return -1, err
	}
	_, raw := selectMatch(re.set.MatchAt(t.haystack(), 0, re.flags.sticky))
	if raw == nil {
		return -1, nil
	}
	return t.toNative(raw.Start), nil
}

// MatchAll returns the text of every match of s, left to right.
//
// Without the g flag it returns at most the first match, found the way
// Exec finds it: from LastIndex, anchored there, when the y flag is set,
// and with the same effect on LastIndex. Only the text is returned; use
// Exec for groups and offsets. With the g flag, matching starts at 0,
// empty matches advance the search by one code point and LastIndex is 0
// afterwards. The result is nil when nothing matched.
//
// Example:
//
//	re := execre.MustNew(`\d+`, "g")
//	all, _ := re.MatchAll("1 22 333") // ["1", "22", "333"]
func (re *RegExp) MatchAll(s string) ([]string, error) {
	t, err := re.cache.get(s)
	if err != nil {
		return nil, err
	}
	var out []string
	re.scan(t, func(_ int, raw *nfa.MatchWithCaptures) {
		out = append(out, s[raw.Start:raw.End])
	})
	return out, nil
}

// Replace returns a copy of s with the first match replaced by template,
// or every match when the g flag is set. Matches are found as MatchAll
// finds them, so a sticky RegExp without g replaces only a match at
// LastIndex and moves LastIndex past it.
//
// Inside template:
//
//	$$      a literal "$"
//	$&      the whole match
//	$`      the text before the match
//	$'      the text after the match
//	$n $nn  capture group n (1-99), empty when it did not participate
//	$<name> the named group, empty when it did not participate
//
// References to groups the pattern does not have are copied literally.
//
// Example:
//
//	re := execre.MustNew(`(?<user>\w+)@(\w+)\.com`, "")
//	out, _ := re.Replace("mail john@example.com", "$2 of $<user>")
//	// out == "mail example of john"
func (re *RegExp) Replace(s, template string) (string, error) {
	t, err := re.cache.get(s)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	last := 0
	matched := false
	re.scan(t, func(winner int, raw *nfa.MatchWithCaptures) {
		matched = true
		sb.WriteString(s[last:raw.Start])
		expand(&sb, template, s, raw, re.names[winner])
		last = raw.End
	})
	if !matched {
		return s, nil
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

// ReplaceFunc is like Replace but the replacement of each match is the
// return value of fn. The matches passed to fn carry UTF-16 offsets, and
// their Input is s.
func (re *RegExp) ReplaceFunc(s string, fn func(*Match[string]) string) (string, error) {
	t, err := re.cache.get(s)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	last := 0
	matched := false
	re.scan(t, func(winner int, raw *nfa.MatchWithCaptures) {
		matched = true
		patternIndex := -1
		if re.isSet {
			patternIndex = winner
		}
		sb.WriteString(s[last:raw.Start])
		sb.WriteString(fn(buildMatch(s, t, raw, re.names[winner], patternIndex)))
		last = raw.End
	})
	if !matched {
		return s, nil
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

// scan calls fn for the first match of t, or for every match when the g
// flag is set. A global scan ignores the cursor and leaves it at 0.
func (re *RegExp) scan(t *Text, fn func(winner int, raw *nfa.MatchWithCaptures)) {
	if !re.flags.global {
		re.scanFirst(t, fn)
		return
	}
	h := t.haystack()
	anchored := re.flags.sticky
	for pos := 0; pos <= len(h); {
		winner, raw := selectMatch(re.set.MatchAt(h, pos, anchored))
		if raw == nil {
			break
		}
		fn(winner, raw)
		if raw.End > raw.Start {
			pos = raw.End
			continue
		}
		if raw.End >= len(h) {
			break
		}
		pos = raw.End + nextRuneLen(h[raw.End:])
	}
	re.cursor.set(0)
}

// scanFirst calls fn for the match Exec would find, and moves the cursor
// the same way.
func (re *RegExp) scanFirst(t *Text, fn func(winner int, raw *nfa.MatchWithCaptures)) {
	start, anchored, ok := re.cursor.begin(t.length())
	if !ok {
		return
	}
	winner, raw := selectMatch(re.set.MatchAt(t.haystack(), t.toByte(start), anchored))
	if raw == nil {
		re.cursor.fail()
		return
	}
	fn(winner, raw)
	re.cursor.succeed(t.toNative(raw.End))
}

// Split divides s around the matches of re and returns the pieces between
// them, each followed by the values of the capture groups of the match
// that ended it. Unmatched groups contribute "".
//
// An empty match never splits at the start of a piece, so an empty
// pattern splits s into code points. The g and y flags are ignored and
// LastIndex is neither used nor changed.
//
// At most n strings are returned; n < 0 means no limit and n == 0 returns
// nil. An empty s yields nil if re matches the empty string and [""]
// otherwise.
//
// Example:
//
//	re := execre.MustNew(`\s*(,)\s*`, "")
//	parts, _ := re.Split("a , b,c", -1) // ["a", ",", "b", ",", "c"]
func (re *RegExp) Split(s string, n int) ([]string, error) {
	t, err := re.cache.get(s)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	h := t.haystack()
	if len(h) == 0 {
		if _, raw := selectMatch(re.set.MatchAt(h, 0, true)); raw != nil {
			return nil, nil
		}
		return []string{s}, nil
	}

	var out []string
	full := func() bool { return n > 0 && len(out) >= n }
	p := 0
	for q := 0; q < len(h); {
		_, raw := selectMatch(re.set.MatchAt(h, q, false))
		if raw == nil || raw.Start >= len(h) {
			break
		}
		if raw.End == p {
			q = raw.Start + nextRuneLen(h[raw.Start:])
			continue
		}
		out = append(out, s[p:raw.Start])
		if full() {
			return out, nil
		}
		for _, span := range raw.Captures[1:] {
			if span == nil {
				out = append(out, "")
			} else {
				out = append(out, s[span[0]:span[1]])
			}
			if full() {
				return out, nil
			}
		}
		p = raw.End
		q = p
	}
	return append(out, s[p:]), nil
}

// nextRuneLen is the byte length of the code point at the start of b, 1 for
// an invalid encoding.
func nextRuneLen(b []byte) int {
	_, size := utf8.DecodeRune(b)
	return size
}

// expand appends template to sb with $ references to raw substituted.
func expand(sb *strings.Builder, template, s string, raw *nfa.MatchWithCaptures, names []string) {
	numGroups := len(raw.Captures) - 1
	group := func(i int) string {
		span := raw.Captures[i]
		if span == nil {
			return ""
		}
		return s[span[0]:span[1]]
	}

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			sb.WriteByte(c)
			i++
			continue
		}

		next := template[i+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			i += 2
		case next == '&':
			sb.WriteString(s[raw.Start:raw.End])
			i += 2
		case next == '`':
			sb.WriteString(s[:raw.Start])
			i += 2
		case next == '\'':
			sb.WriteString(s[raw.End:])
			i += 2
		case isDigit(next):
			n, width := groupReference(template[i+1:], numGroups)
			if width == 0 {
				sb.WriteByte('$')
				i++
				continue
			}
			sb.WriteString(group(n))
			i += 1 + width
		case next == '<':
			n, width := namedReference(template[i+2:], names)
			if width == 0 {
				sb.WriteByte('$')
				i++
				continue
			}
			sb.WriteString(group(n))
			i += 2 + width
		default:
			sb.WriteByte('$')
			i++
		}
	}
}

// groupReference parses the digits after '$'. Two digits are used when
// they name an existing group, otherwise one digit. Group 0 is never
// referenced this way. width is 0 when no group is referenced.
func groupReference(digits string, numGroups int) (n, width int) {
	first := int(digits[0] - '0')
	if len(digits) > 1 && isDigit(digits[1]) {
		if two := first*10 + int(digits[1]-'0'); two >= 1 && two <= numGroups {
			return two, 2
		}
	}
	if first >= 1 && first <= numGroups {
		return first, 1
	}
	return 0, 0
}

// namedReference parses "name>" after "$<" and returns the group number
// and the bytes consumed, or width 0 if the name is not declared.
func namedReference(rest string, names []string) (n, width int) {
	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return 0, 0
	}
	name := rest[:end]
	for i := 1; i < len(names); i++ {
		if names[i] == name && name != "" {
			return i, end + 1
		}
	}
	return 0, 0
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
