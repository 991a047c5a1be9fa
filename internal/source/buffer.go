// Package source holds the byte buffer a parse runs over and the
// ByteRange type every decoded artifact is positioned with.
package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Buffer is the immutable input a single parse call runs over. The parser
// never mutates it; the ParsedFile a parse returns keeps a reference to it
// in its Buffer field, so its byte ranges stay resolvable after the parse.
type Buffer struct {
	Content []byte
}

// NewBuffer wraps raw bytes for scanning. The caller retains ownership;
// Buffer never copies or modifies Content.
func NewBuffer(content []byte) Buffer {
	return Buffer{Content: content}
}

// Len returns the buffer length as a bounds-checked uint32. BGUI files are
// well within uint32 range; a buffer that overflows uint32 indicates the
// caller handed us something that isn't a BGUI file at all.
func (b Buffer) Len() (uint32, error) {
	n, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		return 0, fmt.Errorf("buffer length overflows uint32: %w", err)
	}
	return n, nil
}

// Slice returns Content[r.Start:r.End], or nil if the range is out of
// bounds. Callers that need a guaranteed-valid slice should check the
// range against Len first.
func (b Buffer) Slice(r ByteRange) []byte {
	if r.Start > r.End || int(r.End) > len(b.Content) {
		return nil
	}
	return b.Content[r.Start:r.End]
}
