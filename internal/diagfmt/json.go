package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"bgui/internal/diag"
)

// JSON writes items as a JSON array, one diagnostic object per entry.
func JSON(w io.Writer, items []diag.Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// Msgpack writes items in the same compact binary format parsecache uses
// on disk, letting a host pipe `bguiparse parse --format msgpack` output
// straight into another Go program's decoder.
func Msgpack(w io.Writer, items []diag.Diagnostic) error {
	return msgpack.NewEncoder(w).Encode(items)
}
