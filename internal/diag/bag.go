package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics from a single parse invocation. It has no
// cap: a BGUI file has at most a few hundred containers, so the worst
// case diagnostic count is bounded by the file's own structure.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. The returned slice aliases
// the Bag's internal storage; callers must not mutate it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends other's diagnostics onto b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by primary range start, then end, then severity
// descending, then code ascending, for deterministic output regardless of
// which component emitted what in what order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		if a.Primary.End != c.Primary.End {
			return a.Primary.End < c.Primary.End
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		return a.Code < c.Code
	})
}

// Dedup removes diagnostics that repeat an identical (code, range,
// message) triple, keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]struct{}, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s:%s", d.Code, d.Primary, d.Message)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
