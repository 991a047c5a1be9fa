package diag

import (
	"testing"

	"bgui/internal/source"
)

func TestBagSortOrdersByOffsetThenSeverity(t *testing.T) {
	b := NewBag()
	b.Add(NewWarning(ColorMissing, source.Range(20, 24), "later, lower severity"))
	b.Add(New(SevError, UnknownCode, source.Range(10, 14), "earlier, higher severity"))
	b.Add(NewInfo(RegisterInfo, source.Range(10, 14), "earlier, lowest severity"))

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError {
		t.Fatalf("first item severity = %v, want SevError", items[0].Severity)
	}
	if items[1].Severity != SevInfo {
		t.Fatalf("second item severity = %v, want SevInfo", items[1].Severity)
	}
	if items[2].Primary.Start != 20 {
		t.Fatalf("third item should be the later-offset diagnostic")
	}
}

func TestBagDedupKeepsFirstOccurrence(t *testing.T) {
	b := NewBag()
	b.Add(NewWarning(TrailingBytes, source.Range(0, 1), "dup"))
	b.Add(NewWarning(TrailingBytes, source.Range(0, 1), "dup"))
	b.Add(NewWarning(TrailingBytes, source.Range(0, 1), "distinct"))

	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len() after Dedup = %d, want 2", b.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag()
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("empty bag should report no errors or warnings")
	}
	b.Add(NewInfo(RegisterInfo, source.ByteRange{}, "info only"))
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("info-only bag should report no errors or warnings")
	}
	b.Add(NewWarning(ColorMissing, source.ByteRange{}, "warn"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatal("expected HasWarnings true, HasErrors false")
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag()
	a.Add(NewInfo(RegisterInfo, source.ByteRange{}, "a"))
	b := NewBag()
	b.Add(NewInfo(ContainerInfo, source.ByteRange{}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() after Merge = %d, want 2", a.Len())
	}
}
