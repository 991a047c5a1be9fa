package cursor

import (
	"testing"

	"bgui/internal/source"
)

func putU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestU32AtReadsLittleEndian(t *testing.T) {
	data := append([]byte{0xAA}, putU32(0x01020304)...)
	cur, err := New(source.NewBuffer(data))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got, ok := cur.U32At(1)
	if !ok {
		t.Fatal("U32At(1) ok = false")
	}
	if got != 0x01020304 {
		t.Fatalf("U32At(1) = 0x%X, want 0x01020304", got)
	}
}

func TestU32AtOutOfBounds(t *testing.T) {
	cur, _ := New(source.NewBuffer([]byte{1, 2, 3}))
	if _, ok := cur.U32At(0); ok {
		t.Fatal("U32At(0) over a 3-byte buffer should fail")
	}
	if _, ok := cur.U32At(0xFFFFFFFF); ok {
		t.Fatal("U32At with an offset that overflows when adding 4 should fail, not wrap")
	}
}

func TestF32AtRoundTrips(t *testing.T) {
	// 1.0f is 00 00 80 3F little-endian, the color anchor pattern.
	cur, _ := New(source.NewBuffer([]byte{0x00, 0x00, 0x80, 0x3F}))
	got, ok := cur.F32At(0)
	if !ok || got != 1.0 {
		t.Fatalf("F32At(0) = (%v, %v), want (1.0, true)", got, ok)
	}
}

func TestBytesAtBounds(t *testing.T) {
	cur, _ := New(source.NewBuffer([]byte("hello")))
	b, ok := cur.BytesAt(1, 3)
	if !ok || string(b) != "ell" {
		t.Fatalf("BytesAt(1,3) = (%q, %v), want (\"ell\", true)", b, ok)
	}
	if _, ok := cur.BytesAt(3, 10); ok {
		t.Fatal("BytesAt past the end should fail")
	}
}

func TestFindForwardAndBackward(t *testing.T) {
	data := []byte{0, 0, 0, 0x3F, 0x80, 0, 0, 0, 0, 0x3F, 0x80, 0, 0, 0}
	cur, _ := New(source.NewBuffer(data))

	pat := []byte{0, 0, 0x3F, 0x80}
	_ = pat

	first, ok := cur.FindForward([]byte{0, 0x3F, 0x80}, 0, uint32(len(data)))
	if !ok {
		t.Fatal("FindForward should find the pattern")
	}
	last, ok := cur.FindBackward([]byte{0, 0x3F, 0x80}, 0, uint32(len(data)))
	if !ok {
		t.Fatal("FindBackward should find the pattern")
	}
	if last <= first {
		t.Fatalf("FindBackward offset %d should be after FindForward offset %d", last, first)
	}
}

func TestIsPrintableASCII(t *testing.T) {
	if !IsPrintableASCII('A') || !IsPrintableASCII(' ') || !IsPrintableASCII('~') {
		t.Fatal("printable ASCII range misclassified")
	}
	if IsPrintableASCII(0x00) || IsPrintableASCII(0x7F) || IsPrintableASCII(0x1F) {
		t.Fatal("non-printable byte misclassified as printable")
	}
}
