// Package register implements C2, the Register Locator: it finds the
// end-of-file register signature and decodes the (id, child_count) pairs
// that follow it.
package register

import (
	"errors"
	"fmt"

	"bgui/internal/config"
	"bgui/internal/cursor"
	"bgui/internal/diag"
	"bgui/internal/source"
)

// ErrNotFound is returned when neither the primary signature scan nor the
// fallback heuristic locates a register.
var ErrNotFound = errors.New("register: signature not found")

// signature is the 14-byte register marker: 0x0E followed by thirteen
// zero bytes.
var signature = append([]byte{0x0E}, make([]byte, 13)...)

// Entry is one (id, child_count) pair from the register.
type Entry struct {
	ID         uint32
	ChildCount uint32
	Offset     uint32
}

// Result bundles everything C1 and C3 need from the register.
type Result struct {
	Entries       []Entry
	RegisterStart uint32
	SignatureEnd  uint32
}

// Locate finds the register and decodes its entries. It tries the
// 14-byte signature scan first; if that fails it falls back to a
// heuristic backward scan for a plausible (id=0, count) pair, emitting
// RegisterFallbackUsed so a host can tell which path succeeded.
func Locate(buf source.Buffer, h config.Heuristics, rep diag.Reporter) (Result, error) {
	n, err := buf.Len()
	if err != nil {
		return Result{}, err
	}
	cur, err := cursor.New(buf)
	if err != nil {
		return Result{}, err
	}

	registerStart, entriesStart, ok := locateBySignature(&cur, n, h)
	if !ok {
		registerStart, ok = locateByHeuristic(&cur, n)
		if !ok {
			return Result{}, ErrNotFound
		}
		// No 14-byte signature in the heuristic path: the matched offset
		// is the first entry's own id field.
		entriesStart = registerStart
		rep.Report(diag.NewInfo(diag.RegisterFallbackUsed, source.Range(registerStart, registerStart),
			"register located via heuristic backward scan, not the 14-byte signature"))
	}

	res, err := decodeEntries(&cur, registerStart, entriesStart, n, rep)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// locateBySignature scans backwards from file_len-14 for the last
// occurrence of the 14-byte signature. It returns both the signature's
// own start and the offset its entries begin at (14 bytes later).
func locateBySignature(cur *cursor.Cursor, fileLen uint32, h config.Heuristics) (registerStart, entriesStart uint32, ok bool) {
	if fileLen < 14 {
		return 0, 0, false
	}
	window := h.RegisterSignatureScanWindow
	from := uint32(0)
	if window > 0 && fileLen > window {
		from = fileLen - window
	}
	start, found := cur.FindBackward(signature, from, fileLen)
	if !found {
		return 0, 0, false
	}
	return start, start + 14, true
}

// locateByHeuristic scans backwards two bytes at a time for a u32 id==0
// followed by a plausible child_count whose declared entries fit in the
// remaining file, itself preceded by a zero word (the usual root
// padding).
func locateByHeuristic(cur *cursor.Cursor, fileLen uint32) (uint32, bool) {
	if fileLen < 8 {
		return 0, false
	}
	start := (fileLen - 8) &^ 1
	end := uint32(0)
	const window = 8192
	if fileLen > window {
		end = fileLen - window
	}
	for off := start; off+8 <= fileLen && off >= end; off -= 2 {
		id, ok := cur.U32At(off)
		if !ok || id != 0 {
			if off < 2 {
				break
			}
			continue
		}
		count, ok := cur.U32At(off + 4)
		if !ok {
			if off < 2 {
				break
			}
			continue
		}
		remaining := fileLen - (off + 8)
		needed := count * 8
		if needed > remaining || count >= 100000 {
			if off < 2 {
				break
			}
			continue
		}
		if off >= 4 {
			prev, ok := cur.U32At(off - 4)
			if ok && prev != 0 {
				if off < 2 {
					break
				}
				continue
			}
		}
		return off, true
	}
	return 0, false
}

// decodeEntries reads consecutive (id, child_count) pairs starting at
// entriesStart, which is registerStart+14 after a signature match, or
// registerStart itself after a heuristic match.
func decodeEntries(cur *cursor.Cursor, registerStart, entriesStart, fileLen uint32, rep diag.Reporter) (Result, error) {
	signatureEnd := entriesStart
	if signatureEnd > fileLen {
		signatureEnd = fileLen
	}
	remaining := fileLen - signatureEnd
	capacity := remaining / 8
	leftover := remaining % 8

	entries := make([]Entry, 0, capacity)
	for i := uint32(0); i < capacity; i++ {
		off := signatureEnd + i*8
		id, ok := cur.U32At(off)
		if !ok {
			break
		}
		count, ok := cur.U32At(off + 4)
		if !ok {
			break
		}
		entries = append(entries, Entry{ID: id, ChildCount: count, Offset: off})
	}

	if leftover > 0 {
		tailOff := signatureEnd + capacity*8
		rep.Report(diag.NewWarning(diag.TrailingBytes, source.Range(tailOff, fileLen),
			fmt.Sprintf("%d trailing byte(s) after the last full register entry", leftover)))
	}

	return Result{Entries: entries, RegisterStart: registerStart, SignatureEnd: signatureEnd}, nil
}

// IDSet builds the set of ids the register references, used to
// cross-check candidate containers against what the register actually
// names.
func IDSet(entries []Entry) map[uint32]bool {
	set := make(map[uint32]bool, len(entries))
	for _, e := range entries {
		set[e.ID] = true
	}
	return set
}
