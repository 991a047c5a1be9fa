// Package diagfmt renders a parsed file's diagnostics, containers, and
// register entries for a CLI or log, as pretty text, JSON, or msgpack.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"bgui/internal/diag"
)

// PrettyOpts configures colorized diagnostic output.
type PrettyOpts struct {
	Color bool
}

var (
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes one line per diagnostic: offset, severity, code, message,
// then each note indented beneath it.
func Pretty(w io.Writer, items []diag.Diagnostic, opts PrettyOpts) error {
	for _, d := range items {
		c := severityColor(d.Severity)
		label := d.Severity.String()
		if opts.Color {
			label = c.Sprint(label)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s: %s\n", d.Primary, label, d.Code, d.Message); err != nil {
			return err
		}
		for _, note := range d.Notes {
			if _, err := fmt.Fprintf(w, "    %s note: %s\n", note.Range, note.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}
