package execre

import "github.com/coregx/execre/nfa"

// selectMatch picks the reportable match among per-pattern candidates:
// the leftmost start wins and, among equal starts, the lowest pattern index
// wins regardless of match length. It returns -1 when no candidate exists.
func selectMatch(candidates []*nfa.MatchWithCaptures) (int, *nfa.MatchWithCaptures) {
	winner := -1
	var best *nfa.MatchWithCaptures
	for i, m := range candidates {
		if m == nil {
			continue
		}
		if best == nil || m.Start < best.Start {
			winner, best = i, m
		}
	}
	return winner, best
}
