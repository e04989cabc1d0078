package execre

// mode is how a RegExp uses its cursor, derived from its flags.
type mode uint8

const (
	// modeStateless searches from the start and never touches lastIndex.
	modeStateless mode = iota
	// modeGlobal searches from lastIndex onward.
	modeGlobal
	// modeSticky requires the match to start exactly at lastIndex.
	modeSticky
)

func modeOf(f flags) mode {
	switch {
	case f.sticky:
		return modeSticky
	case f.global:
		return modeGlobal
	default:
		return modeStateless
	}
}

// String returns the telemetry label of the mode.
func (m mode) String() string {
	switch m {
	case modeGlobal:
		return "global"
	case modeSticky:
		return "sticky"
	default:
		return "stateless"
	}
}

// cursorState is the observable state of a cursor.
type cursorState uint8

const (
	// cursorIdle is the state before any stateful match or after a reset.
	cursorIdle cursorState = iota
	// cursorArmed holds a pending non-zero lastIndex.
	cursorArmed
)

// cursor owns lastIndex, the native offset where the next stateful search
// starts. It is not safe for concurrent use.
type cursor struct {
	mode      mode
	lastIndex int
}

// state reports whether a pending offset is held.
func (c *cursor) state() cursorState {
	if c.lastIndex == 0 {
		return cursorIdle
	}
	return cursorArmed
}

// set stores n, clamping negative values to 0.
func (c *cursor) set(n int) {
	c.lastIndex = max(n, 0)
}

// begin returns the native offset a search over a subject of the given
// length starts from and whether it is anchored there. ok is false when
// lastIndex is past the end of the subject; the cursor is then reset and
// the call must report no match.
func (c *cursor) begin(length int) (start int, anchored, ok bool) {
	if c.mode == modeStateless {
		return 0, false, true
	}
	if c.lastIndex > length {
		c.lastIndex = 0
		return 0, false, false
	}
	return c.lastIndex, c.mode == modeSticky, true
}

// succeed records the native end offset of a match. Empty matches leave the
// cursor where they ended.
func (c *cursor) succeed(end int) {
	if c.mode != modeStateless {
		c.lastIndex = end
	}
}

// fail resets a stateful cursor and reports whether it was reset.
func (c *cursor) fail() bool {
	if c.mode == modeStateless {
		return false
	}
	c.lastIndex = 0
	return true
}
