package execre

import "github.com/coregx/execre/nfa"

// buildMatch converts the byte spans of the winning pattern into a Match
// expressed in the subject's native units.
func buildMatch[T string | []byte](input T, c codec[T], raw *nfa.MatchWithCaptures, names []string, patternIndex int) *Match[T] {
	m := &Match[T]{
		Groups:       make([]Group[T], len(raw.Captures)),
		Input:        input,
		PatternIndex: patternIndex,
	}
	named := 0
	for i, span := range raw.Captures {
		if i > 0 && names[i] != "" {
			named++
		}
		if span == nil {
			m.Groups[i] = Group[T]{Start: -1, End: -1}
			continue
		}
		m.Groups[i] = Group[T]{
			Value:   c.slice(span[0], span[1]),
			Start:   c.toNative(span[0]),
			End:     c.toNative(span[1]),
			Matched: true,
		}
	}
	m.Index = m.Groups[0].Start

	if named > 0 {
		m.Named = make([]NamedGroup[T], 0, named)
		for i := 1; i < len(names); i++ {
			if names[i] != "" {
				m.Named = append(m.Named, NamedGroup[T]{Name: names[i], Group: m.Groups[i]})
			}
		}
	}
	return m
}
