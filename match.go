package execre

// Group is one capture group of a match. Matched is false when the group
// did not participate, which is distinct from an empty capture.
type Group[T string | []byte] struct {
	Value   T
	Start   int // native start offset, -1 when unmatched
	End     int // native end offset, -1 when unmatched
	Matched bool
}

// NamedGroup is a capture group together with its declared name.
type NamedGroup[T string | []byte] struct {
	Name string
	Group[T]
}

// Match is the record of one successful exec call.
//
// T is string for text subjects, with offsets in UTF-16 code units, and
// []byte for binary subjects, with offsets in bytes. Values are slices of
// the subject and share its memory.
type Match[T string | []byte] struct {
	// Groups holds every capture slot in order; Groups[0] is the whole match.
	Groups []Group[T]

	// Named holds the named groups in declaration order. It is nil when the
	// winning pattern declares no named groups.
	Named []NamedGroup[T]

	// Index is the native start offset of the whole match.
	Index int

	// Input is the subject passed to the call.
	Input T

	// PatternIndex is the winning pattern of a set, or -1 when the RegExp was
	// created from a single pattern.
	PatternIndex int
}

// Result is the encoding independent view of a match, returned by
// ExecValue. It is implemented by *Match[string] and *Match[[]byte].
type Result interface {
	Start() int
	End() int
	Text() string
	GroupText(i int) (string, bool)
	NumGroups() int
	Pattern() (int, bool)
}

var (
	_ Result = (*Match[string])(nil)
	_ Result = (*Match[[]byte])(nil)
)

// Start returns the native start offset of the match.
func (m *Match[T]) Start() int {
	return m.Index
}

// End returns the native offset just after the match.
func (m *Match[T]) End() int {
	return m.Groups[0].End
}

// Value returns the matched part of the subject.
func (m *Match[T]) Value() T {
	return m.Groups[0].Value
}

// Text returns the matched part of the subject as a string.
func (m *Match[T]) Text() string {
	return string(m.Groups[0].Value)
}

// NumGroups returns the number of capture slots including the whole match.
func (m *Match[T]) NumGroups() int {
	return len(m.Groups)
}

// Group returns the value of capture group i and whether it participated.
func (m *Match[T]) Group(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(m.Groups) || !m.Groups[i].Matched {
		return zero, false
	}
	return m.Groups[i].Value, true
}

// GroupText is Group converted to a string.
func (m *Match[T]) GroupText(i int) (string, bool) {
	v, ok := m.Group(i)
	return string(v), ok
}

// NamedGroup returns the value of the group declared with name and whether
// it participated. It reports false for names the pattern does not declare.
func (m *Match[T]) NamedGroup(name string) (T, bool) {
	var zero T
	for _, g := range m.Named {
		if g.Name == name {
			if !g.Matched {
				return zero, false
			}
			return g.Value, true
		}
	}
	return zero, false
}

// Pattern returns the winning pattern index when the RegExp is a set.
func (m *Match[T]) Pattern() (int, bool) {
	if m.PatternIndex < 0 {
		return 0, false
	}
	return m.PatternIndex, true
}
