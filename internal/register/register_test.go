package register

import (
	"errors"
	"testing"

	"bgui/internal/config"
	"bgui/internal/diag"
	"bgui/internal/source"
)

func putU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestLocateFindsSignatureAndDecodesEntries(t *testing.T) {
	prefix := make([]byte, 20)
	for i := range prefix {
		prefix[i] = 0xAB
	}
	data := append([]byte(nil), prefix...)
	data = append(data, signature...)
	data = append(data, putU32(1)...)
	data = append(data, putU32(2)...)
	data = append(data, putU32(3)...)
	data = append(data, putU32(4)...)

	buf := source.NewBuffer(data)
	res, err := Locate(buf, config.Default(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if res.RegisterStart != uint32(len(prefix)) {
		t.Fatalf("RegisterStart = %d, want %d", res.RegisterStart, len(prefix))
	}
	if len(res.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(res.Entries))
	}
	if res.Entries[0].ID != 1 || res.Entries[0].ChildCount != 2 {
		t.Fatalf("Entries[0] = %+v, want {ID:1 ChildCount:2}", res.Entries[0])
	}
	if res.Entries[1].ID != 3 || res.Entries[1].ChildCount != 4 {
		t.Fatalf("Entries[1] = %+v, want {ID:3 ChildCount:4}", res.Entries[1])
	}
}

func TestLocateUsesLastSignatureOccurrence(t *testing.T) {
	data := append([]byte(nil), signature...)
	data = append(data, 0xAB, 0xAB) // filler so the two signatures aren't adjacent
	data = append(data, signature...)
	data = append(data, putU32(9)...)
	data = append(data, putU32(0)...)

	res, err := Locate(source.NewBuffer(data), config.Default(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	want := uint32(len(signature) + 2)
	if res.RegisterStart != want {
		t.Fatalf("RegisterStart = %d, want the later occurrence at %d", res.RegisterStart, want)
	}
}

func TestLocateReportsTrailingBytes(t *testing.T) {
	data := append([]byte(nil), signature...)
	data = append(data, putU32(1)...)
	data = append(data, putU32(0)...)
	data = append(data, 0x01, 0x02, 0x03) // 3 leftover bytes, not a full entry

	bag := diag.NewBag()
	_, err := Locate(source.NewBuffer(data), config.Default(), diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.TrailingBytes {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a TrailingBytes diagnostic")
	}
}

func TestLocateFallsBackToHeuristic(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = 0xAB
	}
	// prev word (offset 4) zero, id (offset 8) zero, count (offset 12) = 2.
	for i := 4; i < 12; i++ {
		data[i] = 0
	}
	copy(data[12:16], putU32(2))
	// Two register entries filling the remaining 16 bytes exactly.
	copy(data[16:20], putU32(101))
	copy(data[20:24], putU32(0))
	copy(data[24:28], putU32(102))
	copy(data[28:32], putU32(0))

	bag := diag.NewBag()
	res, err := Locate(source.NewBuffer(data), config.Default(), diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if res.RegisterStart != 8 {
		t.Fatalf("RegisterStart = %d, want 8 (heuristic fallback)", res.RegisterStart)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(res.Entries))
	}

	sawFallback := false
	for _, d := range bag.Items() {
		if d.Code == diag.RegisterFallbackUsed {
			sawFallback = true
		}
	}
	if !sawFallback {
		t.Fatal("expected a RegisterFallbackUsed diagnostic")
	}
}

func TestLocateNotFound(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xAB
	}
	_, err := Locate(source.NewBuffer(data), config.Default(), diag.NopReporter{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Locate() error = %v, want ErrNotFound", err)
	}
}

func TestIDSet(t *testing.T) {
	set := IDSet([]Entry{{ID: 1}, {ID: 2}, {ID: 1}})
	if len(set) != 2 || !set[1] || !set[2] {
		t.Fatalf("IDSet = %v, want {1:true, 2:true}", set)
	}
}
