package nfa

import (
	"regexp/syntax"
	"sync"
	"unicode/utf8"

	"github.com/coregx/execre/internal/sparse"
)

// PikeVM implements the Pike VM algorithm for NFA execution.
// It simulates the program by keeping one thread per reachable instruction
// and stepping all threads over the haystack in lockstep, one rune at a time.
//
// Thread priority is the order of the run queue: the first thread to reach
// a match instruction wins and every lower priority thread is cut, which
// yields leftmost-first semantics.
//
// Thread safety: a PikeVM is immutable after creation. Per-search state is
// taken from an internal pool, so one PikeVM may serve concurrent searches.
type PikeVM struct {
	nfa   *NFA
	pool  sync.Pool
	slots int
}

// PikeVMState holds the mutable per-search state of a PikeVM.
type PikeVMState struct {
	run  *queue
	next *queue
}

// queue is one generation of threads. The sparse set deduplicates
// instructions; threads holds the survivors in priority order.
type queue struct {
	set     *sparse.SparseSet
	threads []thread
}

func (q *queue) clear() {
	q.set.Clear()
	q.threads = q.threads[:0]
}

// thread is a position in the program plus its capture slots.
type thread struct {
	pc   uint32
	caps captures
}

// captures holds capture slot positions (-1 = unset). Slices are shared
// between threads and never written in place: a capture instruction copies
// before it records, so sibling threads keep their own view.
type captures []int

func (c captures) with(slot, pos int) captures {
	if slot < 0 || slot >= len(c) {
		return c
	}
	dst := make(captures, len(c))
	copy(dst, c)
	dst[slot] = pos
	return dst
}

// MatchWithCaptures represents a match including capture group positions.
// Captures[i] is [start, end] for group i, or nil if the group did not
// participate. Group 0 is the entire match.
type MatchWithCaptures struct {
	Start    int
	End      int
	Captures [][]int
}

// Group returns the [start, end] span of group i, or nil.
func (m *MatchWithCaptures) Group(i int) []int {
	if i < 0 || i >= len(m.Captures) {
		return nil
	}
	return m.Captures[i]
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	p := &PikeVM{nfa: nfa, slots: nfa.numSlots}
	p.pool.New = func() any {
		return p.newState()
	}
	return p
}

func (p *PikeVM) newState() *PikeVMState {
	capacity := len(p.nfa.prog.Inst)
	return &PikeVMState{
		run:  &queue{set: sparse.NewSparseSet(capacity), threads: make([]thread, 0, capacity)},
		next: &queue{set: sparse.NewSparseSet(capacity), threads: make([]thread, 0, capacity)},
	}
}

// NFA returns the program this VM executes.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// SearchAt finds the leftmost-first match starting at or after 'at'.
//
// When anchored is true the match must start exactly at 'at'. When lastStart
// is non-negative, matches starting after lastStart are not reported, which
// lets callers bound a search by a match already found elsewhere.
// Returns nil if no match is found.
func (p *PikeVM) SearchAt(haystack []byte, at int, anchored bool, lastStart int) *MatchWithCaptures {
	if at < 0 || at > len(haystack) {
		return nil
	}
	if lastStart >= 0 && at > lastStart {
		return nil
	}

	state, _ := p.pool.Get().(*PikeVMState)
	defer p.pool.Put(state)
	state.run.clear()
	state.next.clear()

	caps := p.search(state, haystack, at, anchored, lastStart)
	if caps == nil {
		return nil
	}
	return p.buildCapturesResult(caps)
}

// search runs the VM and returns the capture slots of the winning thread.
func (p *PikeVM) search(state *PikeVMState, haystack []byte, at int, anchored bool, lastStart int) captures {
	prog := p.nfa.prog
	run, next := state.run, state.next

	var matched captures
	pos := at
	prev := runeBefore(haystack, at)
	cur, width := runeAt(haystack, pos)

	for {
		if len(run.threads) == 0 {
			if matched != nil || (anchored && pos > at) || (lastStart >= 0 && pos > lastStart) {
				break
			}
		}

		// Seed a new attempt at pos while no match is known. Unanchored
		// search simulates a leading .*? by seeding at every position.
		if matched == nil && (!anchored || pos == at) && (lastStart < 0 || pos <= lastStart) {
			seed := make(captures, p.slots)
			for i := range seed {
				seed[i] = -1
			}
			if len(seed) > 0 {
				seed[0] = pos
			}
			p.add(run, uint32(prog.Start), pos, seed, syntax.EmptyOpContext(prev, cur))
		}

		nextPos := pos + width
		nextRune, nextWidth := runeAt(haystack, nextPos)
		nextCond := syntax.EmptyOpContext(cur, nextRune)

	step:
		for _, t := range run.threads {
			inst := &prog.Inst[t.pc]
			switch inst.Op {
			case syntax.InstMatch:
				matched = t.caps
				if len(matched) > 1 {
					matched = matched.with(1, pos)
				}
				// Lower priority threads can no longer win.
				break step
			default:
				if cur >= 0 && matchRune(inst, cur) {
					p.add(next, inst.Out, nextPos, t.caps, nextCond)
				}
			}
		}
		run.clear()

		if pos >= len(haystack) {
			break
		}
		prev, cur, width, pos = cur, nextRune, nextWidth, nextPos
		run, next = next, run
	}

	state.run, state.next = run, next
	return matched
}

// add follows empty transitions from pc and appends the reached
// input-consuming and match instructions to q in priority order.
func (p *PikeVM) add(q *queue, pc uint32, pos int, caps captures, cond syntax.EmptyOp) {
	if !q.set.Insert(pc) {
		return
	}
	inst := &p.nfa.prog.Inst[pc]
	switch inst.Op {
	case syntax.InstFail:
	case syntax.InstAlt, syntax.InstAltMatch:
		p.add(q, inst.Out, pos, caps, cond)
		p.add(q, inst.Arg, pos, caps, cond)
	case syntax.InstEmptyWidth:
		if syntax.EmptyOp(inst.Arg)&^cond == 0 {
			p.add(q, inst.Out, pos, caps, cond)
		}
	case syntax.InstNop:
		p.add(q, inst.Out, pos, caps, cond)
	case syntax.InstCapture:
		p.add(q, inst.Out, pos, caps.with(int(inst.Arg), pos), cond)
	case syntax.InstMatch, syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
		q.threads = append(q.threads, thread{pc: pc, caps: caps})
	}
}

// buildCapturesResult converts flat capture slots to the nested result format
func (p *PikeVM) buildCapturesResult(caps captures) *MatchWithCaptures {
	groups := make([][]int, len(caps)/2)
	for i := range groups {
		start, end := caps[2*i], caps[2*i+1]
		if start >= 0 && end >= 0 {
			groups[i] = []int{start, end}
		}
	}
	return &MatchWithCaptures{
		Start:    caps[0],
		End:      caps[1],
		Captures: groups,
	}
}

func matchRune(inst *syntax.Inst, r rune) bool {
	switch inst.Op {
	case syntax.InstRune:
		return inst.MatchRune(r)
	case syntax.InstRune1:
		return r == inst.Rune[0]
	case syntax.InstRuneAny:
		return true
	case syntax.InstRuneAnyNotNL:
		return r != '\n'
	}
	return false
}

// runeAt decodes the rune at pos, returning (-1, 0) at the end of input.
func runeAt(haystack []byte, pos int) (rune, int) {
	if pos >= len(haystack) {
		return -1, 0
	}
	if b := haystack[pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(haystack[pos:])
}

// runeBefore decodes the rune ending at pos, returning -1 at the start.
func runeBefore(haystack []byte, pos int) rune {
	if pos <= 0 {
		return -1
	}
	r, _ := utf8.DecodeLastRune(haystack[:pos])
	return r
}
