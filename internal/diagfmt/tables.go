package diagfmt

import (
	"fmt"
	"io"
	"sort"

	"bgui/internal/container"
	"bgui/internal/register"
)

// FormatContainersPretty writes one line per container sorted by id, for
// `bguiparse parse --dump containers`.
func FormatContainersPretty(w io.Writer, containers []container.Container) error {
	sorted := append([]container.Container(nil), containers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if _, err := fmt.Fprintf(w, "Containers (%d found):\n\n", len(sorted)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "ID    | Kind     | Offset     | Name"); err != nil {
		return err
	}
	for range [70]struct{}{} {
		if _, err := fmt.Fprint(w, "-"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, c := range sorted {
		if _, err := fmt.Fprintf(w, "%-5d | %-8s | 0x%08X | %s\n", c.ID, c.MarkerKind, c.MarkerOffset, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// FormatRegisterPretty writes one line per register entry in file order,
// for `bguiparse parse --dump register`.
func FormatRegisterPretty(w io.Writer, entries []register.Entry) error {
	if _, err := fmt.Fprintf(w, "Register Entries (%d):\n\n", len(entries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Idx   | ID    | Children | Offset"); err != nil {
		return err
	}
	for range [50]struct{}{} {
		if _, err := fmt.Fprint(w, "-"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%-5d | %-5d | %-8d | 0x%08X\n", i, e.ID, e.ChildCount, e.Offset); err != nil {
			return err
		}
	}
	return nil
}
