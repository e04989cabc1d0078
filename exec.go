package execre

import (
	"encoding"
	"fmt"
	"unsafe"
)

// Exec searches s and returns the match, or nil if there is none.
//
// Without the g or y flag the search starts at offset 0 and LastIndex is
// not used. Otherwise it starts at LastIndex (anchored there with y) and
// LastIndex is moved past the match, or reset to 0 when nothing matched.
// Offsets are UTF-16 code units.
//
// It returns a *ConversionError if s is not valid UTF-8.
//
// Example:
//
//	re := execre.MustNew(`quick\s(brown).+?(jumps)`, "ig")
//	m, _ := re.Exec("The Quick Brown Fox Jumps Over The Lazy Dog")
//	// m.Text() == "Quick Brown Fox Jumps", m.Index == 4, re.LastIndex() == 25
func (re *RegExp) Exec(s string) (*Match[string], error) {
	t, err := re.cache.get(s)
	if err != nil {
		return nil, err
	}
	return execute(re, s, t), nil
}

// ExecText is Exec for a prepared text.
func (re *RegExp) ExecText(t *Text) *Match[string] {
	return execute(re, t.String(), t)
}

// ExecBytes searches the binary subject b. Offsets, LastIndex included, are
// byte offsets, and group values are subslices of b.
func (re *RegExp) ExecBytes(b []byte) *Match[[]byte] {
	return execute(re, b, binary(b))
}

// ExecValue coerces v to a subject and executes on it. Strings, *Text,
// []uint16 and values implementing encoding.TextMarshaler or fmt.Stringer
// are text subjects; []byte is a binary subject. Errors of the coercion
// are returned unchanged.
//
// The Result is nil when there is no match.
func (re *RegExp) ExecValue(v any) (Result, error) {
	switch v := v.(type) {
	case string:
		m, err := re.Exec(v)
		return asResult(m), err
	case []byte:
		return asResult(re.ExecBytes(v)), nil
	case *Text:
		return asResult(re.ExecText(v)), nil
	case []uint16:
		t, err := NewTextUTF16(v)
		if err != nil {
			return nil, err
		}
		return asResult(re.ExecText(t)), nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return nil, err
		}
		m, err := re.Exec(string(b))
		return asResult(m), err
	case fmt.Stringer:
		m, err := re.Exec(v.String())
		return asResult(m), err
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSubject, v)
	}
}

// Test reports whether Exec(s) would match, with the same effect on
// LastIndex.
func (re *RegExp) Test(s string) (bool, error) {
	m, err := re.Exec(s)
	return m != nil, err
}

// TestBytes reports whether ExecBytes(b) would match, with the same effect
// on LastIndex.
func (re *RegExp) TestBytes(b []byte) bool {
	return re.ExecBytes(b) != nil
}

func asResult[T string | []byte](m *Match[T]) Result {
	if m == nil {
		return nil
	}
	return m
}

// execute runs one exec call: cursor, automaton, selection, result.
func execute[T string | []byte](re *RegExp, input T, c codec[T]) *Match[T] {
	length := c.length()
	lastIndex := re.cursor.lastIndex

	start, anchored, ok := re.cursor.begin(length)
	if !ok {
		re.telemetry.reset(lastIndex, length)
		re.telemetry.record(false)
		return nil
	}

	winner, raw := selectMatch(re.set.MatchAt(c.haystack(), c.toByte(start), anchored))
	if raw == nil {
		if re.cursor.fail() {
			re.telemetry.reset(lastIndex, length)
		}
		re.telemetry.record(false)
		return nil
	}

	patternIndex := -1
	if re.isSet {
		patternIndex = winner
	}
	m := buildMatch(input, c, raw, re.names[winner], patternIndex)
	re.cursor.succeed(m.End())
	re.telemetry.record(true)
	return m
}

// textCache remembers the prepared form of the last string subject, so
// iterating over one string with a global or sticky RegExp validates it
// and builds its offset table only once.
type textCache struct {
	data *byte
	n    int
	text *Text
}

func (c *textCache) get(s string) (*Text, error) {
	data := unsafe.StringData(s)
	if c.text != nil && c.data == data && c.n == len(s) {
		return c.text, nil
	}
	t, err := NewText(s)
	if err != nil {
		return nil, err
	}
	c.data, c.n, c.text = data, len(s), t
	return t, nil
}
