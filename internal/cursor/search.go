package cursor

import (
	"bytes"

	"fortio.org/safecast"
)

// FindForward returns the offset of the first occurrence of pat within
// [from, limit) of c's content, or false if absent. limit is exclusive
// and clamped to c.Limit.
func (c *Cursor) FindForward(pat []byte, from, limit uint32) (uint32, bool) {
	if limit > c.Limit {
		limit = c.Limit
	}
	if from >= limit || len(pat) == 0 {
		return 0, false
	}
	idx := bytes.Index(c.Content[from:limit], pat)
	if idx < 0 {
		return 0, false
	}
	off, err := safecast.Conv[uint32](idx)
	if err != nil {
		return 0, false
	}
	return from + off, true
}

// FindBackward returns the offset of the last occurrence of pat within
// [from, limit) of c's content, or false if absent. Used for the
// backward color-anchor search in container decoding.
func (c *Cursor) FindBackward(pat []byte, from, limit uint32) (uint32, bool) {
	if limit > c.Limit {
		limit = c.Limit
	}
	if from >= limit || len(pat) == 0 {
		return 0, false
	}
	idx := bytes.LastIndex(c.Content[from:limit], pat)
	if idx < 0 {
		return 0, false
	}
	off, err := safecast.Conv[uint32](idx)
	if err != nil {
		return 0, false
	}
	return from + off, true
}

// FindAllForward returns the offsets of every occurrence of pat within
// [from, limit), overlapping ones included, in ascending order.
func (c *Cursor) FindAllForward(pat []byte, from, limit uint32) []uint32 {
	var out []uint32
	for {
		off, ok := c.FindForward(pat, from, limit)
		if !ok {
			return out
		}
		out = append(out, off)
		from = off + 1
	}
}

// IsPrintableASCII reports whether b is in the 0x20..0x7E printable range
// required for container names.
func IsPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}
