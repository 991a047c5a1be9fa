// Package container implements C3, the Container Scanner: it forward-scans
// the byte region before the register for 03/04 markers, validates each
// candidate against the register's id set, and decodes the accepted ones
// into Container records.
package container

import (
	"bytes"
	"fmt"

	"bgui/internal/config"
	"bgui/internal/cursor"
	"bgui/internal/diag"
	"bgui/internal/source"
)

// MarkerKind distinguishes the two block-opening markers; both share the
// same body layout.
type MarkerKind uint8

const (
	Standard MarkerKind = 0x03
	Text     MarkerKind = 0x04
)

func (k MarkerKind) String() string {
	if k == Text {
		return "Text"
	}
	return "Standard"
}

var markerStandard = []byte{0x03, 0x00, 0x00, 0x00}
var markerText = []byte{0x04, 0x00, 0x00, 0x00}

var resourceTag = []byte{0xBD, 0x00, 0x00, 0x00}
var standardFlags = []byte{0x00, 0x01, 0x00, 0x00, 0x00}
var colorAnchor = []byte{0x00, 0x00, 0x80, 0x3F}

// resourceLengthOffsets are the candidate byte distances from the tag's
// first byte to the inner-length byte, tried in order when the standard
// 5-byte flags region (offset 9) doesn't decode a plausible string.
var resourceLengthOffsets = []uint32{5, 6, 8, 10, 11, 12, 13, 14}

// Color is an RGB triple read from the three bytes preceding a color
// anchor.
type Color struct {
	R, G, B uint8
}

// Resource is a decoded BD-tagged property: a texture or font path plus
// the ranges of its flags region and string.
type Resource struct {
	Text        string
	StringRange source.ByteRange
	FlagsRange  source.ByteRange
	Truncated   bool
}

// ManifestString is one Pascal-style entry from the id-0 manifest's string
// table.
type ManifestString struct {
	Text  string
	Range source.ByteRange
}

// Container is one decoded block.
type Container struct {
	MarkerKind MarkerKind
	Name       string
	ID         uint32

	X, Y, Size float32

	// Reserved holds the 44 preserved-verbatim bytes at body+20; its
	// semantics are unknown.
	Reserved []byte

	Resource *Resource
	Color    *Color

	// ManifestStrings is populated only for the id-0 manifest container.
	ManifestStrings []ManifestString

	MarkerOffset uint32
	BodyOffset   uint32
	BlockEnd     uint32

	NameRange     source.ByteRange
	ReservedRange source.ByteRange
	ColorRange    source.ByteRange
}

// HeaderRange covers the marker, length byte, name, and 4-byte hash/pad.
func (c Container) HeaderRange() source.ByteRange {
	return source.Range(c.MarkerOffset, c.BodyOffset)
}

// BodyRange covers the id, geometry, and reserved block.
func (c Container) BodyRange() source.ByteRange {
	return source.Range(c.BodyOffset, c.BodyOffset+64)
}

// ResourceRange returns the resource string's range, or the zero range if
// no resource was decoded.
func (c Container) ResourceRange() source.ByteRange {
	if c.Resource == nil {
		return source.ByteRange{}
	}
	return c.Resource.StringRange
}

// Result bundles the scan's output: the ordered containers and the
// header_end value C1 needs.
type Result struct {
	Containers []Container
	HeaderEnd  uint32
}

type rawCandidate struct {
	markerOffset uint32
	kind         MarkerKind
	name         string
	nameRange    source.ByteRange
	bodyOffset   uint32
	id           uint32
}

// Scan finds every 03/04 marker in [0, registerStart), validates
// candidates, decodes the accepted ones, and computes header_end.
func Scan(buf source.Buffer, registerStart uint32, registerIDs map[uint32]bool, h config.Heuristics, rep diag.Reporter) (Result, error) {
	cur, err := cursor.New(buf)
	if err != nil {
		return Result{}, err
	}

	candidates := firstPass(&cur, registerStart, h)
	accepted := secondPass(candidates, registerIDs)

	containers := make([]Container, 0, len(accepted))
	seen := make(map[uint32]bool, len(accepted))
	for i, c := range accepted {
		if seen[c.id] {
			rep.Report(diag.NewWarning(diag.DuplicateId,
				source.Range(c.markerOffset, c.markerOffset+9),
				fmt.Sprintf("container id %d already accepted; skipping duplicate at offset %d", c.id, c.markerOffset)))
			continue
		}
		seen[c.id] = true

		blockEnd := registerStart
		if i+1 < len(accepted) {
			blockEnd = accepted[i+1].markerOffset
		}

		containers = append(containers, decode(&cur, c, blockEnd, h, rep))
	}

	headerEnd := registerStart
	if len(containers) > 0 {
		headerEnd = containers[0].MarkerOffset
	}

	if len(containers) == 0 {
		rep.Report(diag.NewWarning(diag.ContainerInfo, source.Range(0, registerStart),
			"no container accepted in the pre-register region"))
	}

	return Result{Containers: containers, HeaderEnd: headerEnd}, nil
}

// firstPass finds every marker occurrence and applies validation rules 1,
// 2, and the relaxed sanity-bound form of rule 4, deferring the
// register-membership check (rule 3) to secondPass.
func firstPass(cur *cursor.Cursor, registerStart uint32, h config.Heuristics) []rawCandidate {
	offsets := cur.FindAllForward(markerStandard, 0, registerStart)
	offsets = append(offsets, cur.FindAllForward(markerText, 0, registerStart)...)

	kindAt := func(off uint32) MarkerKind {
		b, ok := cur.U8At(off)
		if ok && b == byte(Text) {
			return Text
		}
		return Standard
	}

	sortUint32(offsets)

	out := make([]rawCandidate, 0, len(offsets))
	for _, off := range offsets {
		// Rule 1.
		if off+9 > registerStart {
			continue
		}
		n, ok := cur.U8At(off + 4)
		if !ok {
			continue
		}
		// Rule 2.
		if n > h.MaxNameLength {
			continue
		}
		nameOff := off + 5
		nameBytes, ok := cur.BytesAt(nameOff, uint32(n))
		if !ok {
			continue
		}
		if n > 0 && !allPrintable(nameBytes) {
			continue
		}
		bodyOffset := off + 4 + 1 + uint32(n) + 4

		// A zero-length name is definitionally the manifest; its id is
		// 0 by construction, not read from the buffer, since that slot
		// is reused for string_count instead.
		var id uint32
		if n > 0 {
			var ok bool
			id, ok = cur.U32At(bodyOffset)
			if !ok {
				continue
			}
			// Relaxed rule 4: sanity bound only, register check deferred.
			if id > h.MaxContainerID {
				continue
			}
		}
		out = append(out, rawCandidate{
			markerOffset: off,
			kind:         kindAt(off),
			name:         string(nameBytes),
			nameRange:    source.Range(nameOff, nameOff+uint32(n)),
			bodyOffset:   bodyOffset,
			id:           id,
		})
	}
	return out
}

// secondPass implements rule 3: a candidate survives only if its id is one
// the register actually declares, the register being authoritative for
// topology.
func secondPass(candidates []rawCandidate, registerIDs map[uint32]bool) []rawCandidate {
	out := make([]rawCandidate, 0, len(candidates))
	for _, c := range candidates {
		if registerIDs[c.id] {
			out = append(out, c)
		}
	}
	return out
}

func decode(cur *cursor.Cursor, c rawCandidate, blockEnd uint32, h config.Heuristics, rep diag.Reporter) Container {
	out := Container{
		MarkerKind:   c.kind,
		Name:         c.name,
		ID:           c.id,
		MarkerOffset: c.markerOffset,
		BodyOffset:   c.bodyOffset,
		BlockEnd:     blockEnd,
		NameRange:    c.nameRange,
	}

	if c.id == 0 {
		// The manifest reuses the pad/hash slot for string_count and has
		// no geometry; it uses marker-relative offsets rather than the
		// standard body layout.
		out.ManifestStrings = decodeManifest(cur, c.markerOffset, blockEnd, h)
		return out
	}

	if x, ok := cur.F32At(c.bodyOffset + 4); ok {
		out.X = x
	}
	if y, ok := cur.F32At(c.bodyOffset + 8); ok {
		out.Y = y
	}
	if s, ok := cur.F32At(c.bodyOffset + 12); ok {
		out.Size = s
	}

	reservedOff := c.bodyOffset + 20
	if reserved, ok := cur.BytesAt(reservedOff, 44); ok {
		out.Reserved = append([]byte(nil), reserved...)
		out.ReservedRange = source.Range(reservedOff, reservedOff+44)
	}

	out.Resource = decodeResource(cur, c.bodyOffset+64, blockEnd, h, rep)
	out.Color, out.ColorRange = decodeColor(cur, c.bodyOffset+64, blockEnd, rep, c.markerOffset)

	return out
}

// decodeManifest implements the id-0 special case: a u32 string_count at
// marker+5 (the slot a named container would use for its hash/pad field)
// followed by Pascal-style strings starting at marker+64.
func decodeManifest(cur *cursor.Cursor, markerOffset, blockEnd uint32, h config.Heuristics) []ManifestString {
	// The manifest has no name or geometry to push the pad/hash field
	// out of the way, so the format repurposes that slot (marker+5) to
	// hold string_count directly, and the string table itself starts
	// at a fixed marker-relative offset rather than right after it.
	count, ok := cur.U32At(markerOffset + 5)
	if !ok {
		return nil
	}
	if count > h.MaxManifestStringCount {
		count = h.MaxManifestStringCount
	}

	var out []ManifestString
	off := markerOffset + 64
	for i := uint32(0); i < count && off < blockEnd; i++ {
		l, ok := cur.U8At(off)
		if !ok || l == 0 || l > h.MaxManifestStringLength {
			break
		}
		strBytes, ok := cur.BytesAt(off+1, uint32(l))
		if !ok {
			break
		}
		out = append(out, ManifestString{
			Text:  string(strBytes),
			Range: source.Range(off, off+1+uint32(l)),
		})
		off += 1 + uint32(l)
	}
	return out
}

// decodeResource decodes the BD-tagged resource property, trying the
// configured flags-region length first and only falling back to a
// multi-offset search when that doesn't yield a plausible string.
func decodeResource(cur *cursor.Cursor, tagOff, blockEnd uint32, h config.Heuristics, rep diag.Reporter) *Resource {
	tag, ok := cur.BytesAt(tagOff, 4)
	if !ok || !bytes.Equal(tag, resourceTag) {
		return nil
	}

	primaryLenOff := uint32(4) + uint32(h.ResourceFlagsLength)
	if r := tryResourceAt(cur, tagOff, primaryLenOff, blockEnd, h); r != nil {
		flags, ok := cur.BytesAt(tagOff+4, uint32(h.ResourceFlagsLength))
		if !ok || !bytes.Equal(flags, standardFlags) {
			rep.Report(diag.NewWarning(diag.ResourceFlagsNonStandard, r.FlagsRange,
				"resource flags region doesn't match the standard 00 01 00 00 00 pattern"))
		}
		return finishResource(r, blockEnd, rep)
	}

	for _, lenOff := range resourceLengthOffsets {
		if lenOff == primaryLenOff {
			continue
		}
		if r := tryResourceAt(cur, tagOff, lenOff, blockEnd, h); r != nil {
			rep.Report(diag.NewWarning(diag.ResourceFlagsNonStandard, r.FlagsRange,
				fmt.Sprintf("resource flags region is %d bytes, not the configured %d", lenOff-4, h.ResourceFlagsLength)))
			return finishResource(r, blockEnd, rep)
		}
	}

	return nil
}

// tryResourceAt attempts to decode a resource assuming the inner-length
// byte sits at tagOff+lenOffset, returning nil if the result isn't
// plausible.
func tryResourceAt(cur *cursor.Cursor, tagOff, lenOffset, blockEnd uint32, h config.Heuristics) *Resource {
	lenOff := tagOff + lenOffset
	m, ok := cur.U8At(lenOff)
	if !ok || m == 0 || m > h.MaxResourceStringLength {
		return nil
	}
	strOff := lenOff + 1
	available := uint32(0)
	if blockEnd > strOff {
		available = blockEnd - strOff
	}
	n := uint32(m)
	truncated := false
	if n > available {
		n = available
		truncated = true
	}
	strBytes, ok := cur.BytesAt(strOff, n)
	if !ok || n == 0 {
		return nil
	}
	if !looksLikeResourcePath(strBytes) {
		return nil
	}
	return &Resource{
		Text:        string(strBytes),
		StringRange: source.Range(strOff, strOff+n),
		FlagsRange:  source.Range(tagOff+4, lenOff),
		Truncated:   truncated,
	}
}

func finishResource(r *Resource, blockEnd uint32, rep diag.Reporter) *Resource {
	if r.Truncated {
		rep.Report(diag.NewWarning(diag.ResourceTruncated, r.StringRange,
			"resource string truncated by the following container's marker"))
	}
	return r
}

var knownResourceExtensions = []string{".dds", ".bspr", ".png", ".ttf", ".tga", ".bmp", ".wav", ".fnt"}

func looksLikeResourcePath(b []byte) bool {
	if !allPrintable(b) {
		return false
	}
	s := string(b)
	if !bytes.Contains(b, []byte(".")) {
		return false
	}
	for _, ext := range knownResourceExtensions {
		if len(s) >= len(ext) && s[len(s)-len(ext):] == ext {
			return true
		}
	}
	// Unknown extension but otherwise a plausible dotted path; accept it
	// rather than maintaining an exhaustive extension list.
	return true
}

// decodeColor implements the backward color-anchor search.
func decodeColor(cur *cursor.Cursor, from, blockEnd uint32, rep diag.Reporter, markerOffset uint32) (*Color, source.ByteRange) {
	anchorOff, ok := cur.FindBackward(colorAnchor, from, blockEnd)
	if !ok || anchorOff < 3 {
		rep.Report(diag.NewWarning(diag.ColorMissing, source.Range(from, blockEnd),
			"no color anchor (00 00 80 3F) found in container body"))
		return nil, source.ByteRange{}
	}
	rgb, ok := cur.BytesAt(anchorOff-3, 3)
	if !ok {
		rep.Report(diag.NewWarning(diag.ColorMissing, source.Range(from, blockEnd),
			"color anchor found but preceding RGB bytes are out of range"))
		return nil, source.ByteRange{}
	}
	return &Color{R: rgb[0], G: rgb[1], B: rgb[2]}, source.Range(anchorOff-3, anchorOff+4)
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if !cursor.IsPrintableASCII(c) {
			return false
		}
	}
	return true
}

func sortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
