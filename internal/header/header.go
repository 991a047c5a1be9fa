// Package header implements C1, the Header Decoder: magic classification,
// the optional sprite pointer, the project-root marker, and the ordered
// page/manifest string list.
package header

import (
	"bytes"

	"bgui/internal/config"
	"bgui/internal/cursor"
	"bgui/internal/diag"
	"bgui/internal/source"
)

// Variant classifies the 4-byte magic at offset 0.
type Variant uint8

const (
	StandardMagic Variant = iota
	AlternateMagic
	UnknownMagic
)

func (v Variant) String() string {
	switch v {
	case StandardMagic:
		return "Standard"
	case AlternateMagic:
		return "Alternate"
	default:
		return "Unknown"
	}
}

var standardMagic = []byte{0x00, 0x00, 0x10, 0x40}
var alternateMagic = []byte{0x7B, 0x14, 0x0E, 0x40}
var spriteMarker = []byte{0x01, 0x00, 0x00, 0x00}
var projectRootMarker = []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
var containerLiteral = []byte("Container")
var pageLiteral = "page"

// PageString is one ordered manifest/page entry found scanning the header
// tail for Pascal-style strings.
type PageString struct {
	Text  string
	Range source.ByteRange
}

// Facts is everything the header decode step recovers from the file.
type Facts struct {
	Magic   [4]byte
	Variant Variant

	HasSprite   bool
	SpritePath  string
	SpriteRange source.ByteRange

	HasProjectRoot   bool
	ProjectRootRange source.ByteRange

	PageStrings []PageString

	HeaderEnd uint32
}

// Decode reads the header facts. headerEnd must come from the container
// scanner: C3 runs before C1 so the header scan never reads past the
// first accepted container.
func Decode(buf source.Buffer, headerEnd uint32, h config.Heuristics, rep diag.Reporter) (Facts, error) {
	cur, err := cursor.New(buf)
	if err != nil {
		return Facts{}, err
	}

	facts := Facts{HeaderEnd: headerEnd}

	magic, ok := cur.BytesAt(0, 4)
	if ok {
		copy(facts.Magic[:], magic)
	}
	switch {
	case bytes.Equal(magic, standardMagic):
		facts.Variant = StandardMagic
	case bytes.Equal(magic, alternateMagic):
		facts.Variant = AlternateMagic
		rep.Report(diag.NewWarning(diag.MagicVariant, source.Range(0, 4),
			"alternate magic 7B 14 0E 40; layout beyond the common header is not decoded"))
	default:
		facts.Variant = UnknownMagic
		rep.Report(diag.NewWarning(diag.MagicUnknown, source.Range(0, 4),
			"magic bytes don't match either known variant"))
	}

	decodeSprite(&cur, &facts, rep)
	decodeProjectRoot(&cur, &facts, headerEnd, rep)
	facts.PageStrings = scanPageStrings(&cur, &facts, headerEnd, h)

	return facts, nil
}

func decodeSprite(cur *cursor.Cursor, facts *Facts, rep diag.Reporter) {
	marker, ok := cur.BytesAt(4, 4)
	if !ok || !bytes.Equal(marker, spriteMarker) {
		rep.Report(diag.NewWarning(diag.SpriteAbsent, source.Range(4, 4), "no sprite marker at offset 4"))
		return
	}
	l, ok := cur.U32At(8)
	if !ok {
		rep.Report(diag.NewWarning(diag.SpriteAbsent, source.Range(4, 8), "sprite length field out of range"))
		return
	}
	strBytes, ok := cur.BytesAt(12, l)
	if !ok {
		rep.Report(diag.NewWarning(diag.SpriteAbsent, source.Range(4, 12), "sprite string out of range"))
		return
	}
	if !bytes.HasSuffix(strBytes, []byte(".bspr")) {
		rep.Report(diag.NewWarning(diag.SpriteAbsent, source.Range(12, 12+l),
			"string at sprite position doesn't end in .bspr"))
		return
	}
	facts.HasSprite = true
	facts.SpritePath = string(strBytes)
	facts.SpriteRange = source.Range(4, 12+l)
}

func decodeProjectRoot(cur *cursor.Cursor, facts *Facts, headerEnd uint32, rep diag.Reporter) {
	from := uint32(4)
	for {
		off, ok := cur.FindForward(projectRootMarker, from, headerEnd)
		if !ok {
			rep.Report(diag.NewWarning(diag.ProjectRootAbsent, source.Range(4, headerEnd),
				"no project-root Container marker found in header"))
			return
		}
		prefixOff := off + 8

		// Try a u8 length prefix first, then a u32 prefix.
		if l, ok := cur.U8At(prefixOff); ok && uint32(l) == uint32(len(containerLiteral)) {
			if str, ok := cur.BytesAt(prefixOff+1, uint32(l)); ok && bytes.Equal(str, containerLiteral) {
				facts.HasProjectRoot = true
				facts.ProjectRootRange = source.Range(off, prefixOff+1+uint32(l))
				return
			}
		}
		if l, ok := cur.U32At(prefixOff); ok && l == uint32(len(containerLiteral)) {
			if str, ok := cur.BytesAt(prefixOff+4, l); ok && bytes.Equal(str, containerLiteral) {
				facts.HasProjectRoot = true
				facts.ProjectRootRange = source.Range(off, prefixOff+4+l)
				return
			}
		}
		from = off + 1
	}
}

// scanPageStrings looks for the literal Pascal string "page" followed
// immediately by another Pascal string (the page name), collecting the
// latter.
func scanPageStrings(cur *cursor.Cursor, facts *Facts, headerEnd uint32, h config.Heuristics) []PageString {
	start := uint32(4)
	if facts.HasSprite && facts.SpriteRange.End > start {
		start = facts.SpriteRange.End
	}

	var out []PageString
	off := start
	for off < headerEnd {
		text, end, ok := decodePascal(cur, off, headerEnd, h.MaxManifestStringLength)
		if !ok {
			off++
			continue
		}
		if text != pageLiteral {
			off = end
			continue
		}
		nameText, nameEnd, ok := decodePascal(cur, end, headerEnd, h.MaxManifestStringLength)
		if !ok {
			off = end
			continue
		}
		out = append(out, PageString{Text: nameText, Range: source.Range(off, nameEnd)})
		off = nameEnd
	}
	return out
}

// decodePascal reads a single-byte length N followed by N printable ASCII
// bytes, failing if N is 0, exceeds max, or any byte isn't printable.
func decodePascal(cur *cursor.Cursor, off, limit uint32, max uint8) (string, uint32, bool) {
	if off >= limit {
		return "", off, false
	}
	n, ok := cur.U8At(off)
	if !ok || n == 0 || n > max {
		return "", off, false
	}
	strBytes, ok := cur.BytesAt(off+1, uint32(n))
	if !ok || off+1+uint32(n) > limit {
		return "", off, false
	}
	if !allPrintable(strBytes) {
		return "", off, false
	}
	return string(strBytes), off + 1 + uint32(n), true
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if !cursor.IsPrintableASCII(c) {
			return false
		}
	}
	return true
}
