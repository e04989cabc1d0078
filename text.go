package execre

import (
	"sort"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"
)

// codec translates between a subject's native offsets and the byte offsets
// of its UTF-8 haystack.
type codec[T string | []byte] interface {
	// haystack returns the bytes the automaton searches. It must not be
	// modified.
	haystack() []byte

	// length returns the subject length in native units.
	length() int

	// toByte converts a native offset in [0, length()] to a byte offset.
	toByte(native int) int

	// toNative converts a code point aligned byte offset to a native offset.
	toNative(byteOffset int) int

	// slice returns the subject between two byte offsets without copying.
	slice(start, end int) T
}

// Text is a prepared text subject indexed in UTF-16 code units, the unit
// ECMAScript string offsets are counted in. Preparing a Text once and
// passing it to ExecText avoids revalidating the string on every call.
//
// A Text is immutable and safe for concurrent use.
type Text struct {
	s     string
	units int  // length in UTF-16 code units
	ascii bool // every byte < 0x80; offsets are then identical

	once   sync.Once
	bounds []boundary // code point boundaries, built on first non-trivial lookup
}

// boundary is the position of one code point start in both unit systems.
type boundary struct {
	byteOffset int
	unitOffset int
}

// NewText validates s and prepares it for matching.
// It returns a *ConversionError if s is not valid UTF-8.
func NewText(s string) (*Text, error) {
	t := &Text{s: s, ascii: true}
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			t.units++
			i++
			continue
		}
		t.ascii = false
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &ConversionError{Offset: i, Err: ErrInvalidUTF8}
		}
		t.units += utf16.RuneLen(r)
		i += size
	}
	return t, nil
}

// NewTextUTF16 decodes UTF-16 code units into a Text.
// It returns a *ConversionError if u contains an unpaired surrogate.
func NewTextUTF16(u []uint16) (*Text, error) {
	buf := make([]byte, 0, len(u))
	for i := 0; i < len(u); i++ {
		r := rune(u[i])
		switch {
		case utf16.IsSurrogate(r):
			if i+1 >= len(u) {
				return nil, &ConversionError{Offset: i, Err: ErrUnpairedSurrogate}
			}
			r = utf16.DecodeRune(r, rune(u[i+1]))
			if r == utf8.RuneError {
				return nil, &ConversionError{Offset: i, Err: ErrUnpairedSurrogate}
			}
			i++
		}
		buf = utf8.AppendRune(buf, r)
	}
	return NewText(string(buf))
}

// String returns the text as a Go string.
func (t *Text) String() string {
	return t.s
}

// Len returns the length in UTF-16 code units.
func (t *Text) Len() int {
	return t.units
}

// ByteLen returns the length of the UTF-8 encoding in bytes.
func (t *Text) ByteLen() int {
	return len(t.s)
}

// ToByteOffset converts a UTF-16 offset to a UTF-8 byte offset. An offset
// between the two units of a surrogate pair is rounded forward to the next
// code point. Offsets outside [0, Len()] are clamped.
func (t *Text) ToByteOffset(unitOffset int) int {
	return t.toByte(min(max(unitOffset, 0), t.units))
}

// ToUnitOffset converts a UTF-8 byte offset to a UTF-16 offset.
// It panics if byteOffset is not a code point boundary of the text.
func (t *Text) ToUnitOffset(byteOffset int) int {
	return t.toNative(byteOffset)
}

func (t *Text) haystack() []byte {
	// The automaton only reads the haystack, so the string bytes are safe
	// to share.
	return unsafe.Slice(unsafe.StringData(t.s), len(t.s))
}

func (t *Text) length() int {
	return t.units
}

func (t *Text) toByte(native int) int {
	if t.ascii {
		return native
	}
	bounds := t.boundaries()
	i := sort.Search(len(bounds), func(i int) bool {
		return bounds[i].unitOffset >= native
	})
	return bounds[i].byteOffset
}

func (t *Text) toNative(byteOffset int) int {
	if byteOffset < 0 || byteOffset > len(t.s) {
		panic("execre: byte offset out of range")
	}
	if t.ascii {
		return byteOffset
	}
	bounds := t.boundaries()
	i := sort.Search(len(bounds), func(i int) bool {
		return bounds[i].byteOffset >= byteOffset
	})
	if bounds[i].byteOffset != byteOffset {
		panic("execre: byte offset is not a code point boundary")
	}
	return bounds[i].unitOffset
}

func (t *Text) slice(start, end int) string {
	return t.s[start:end]
}

// boundaries returns the boundary table, with a final entry for the end of
// the text.
func (t *Text) boundaries() []boundary {
	t.once.Do(func() {
		bounds := make([]boundary, 0, utf8.RuneCountInString(t.s)+1)
		units := 0
		for i, r := range t.s {
			bounds = append(bounds, boundary{byteOffset: i, unitOffset: units})
			units += utf16.RuneLen(r)
		}
		t.bounds = append(bounds, boundary{byteOffset: len(t.s), unitOffset: units})
	})
	return t.bounds
}

// binary is a byte subject. Native offsets are byte offsets.
type binary []byte

func (b binary) haystack() []byte {
	return b
}

func (b binary) length() int {
	return len(b)
}

func (b binary) toByte(native int) int {
	return native
}

func (b binary) toNative(byteOffset int) int {
	return byteOffset
}

func (b binary) slice(start, end int) []byte {
	return b[start:end:end]
}
