package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileFormat is the bgui.toml schema; every field is optional and falls
// back to Default() when absent.
type fileFormat struct {
	Heuristics tomlHeuristics `toml:"heuristics"`
}

type tomlHeuristics struct {
	MaxNameLength               *uint8  `toml:"max_name_length"`
	MaxContainerID              *uint32 `toml:"max_container_id"`
	ResourceFlagsLength         *uint8  `toml:"resource_flags_length"`
	MaxResourceStringLength     *uint8  `toml:"max_resource_string_length"`
	MaxManifestStringLength     *uint8  `toml:"max_manifest_string_length"`
	MaxManifestStringCount      *uint32 `toml:"max_manifest_string_count"`
	RegisterSignatureScanWindow *uint32 `toml:"register_signature_scan_window"`
}

// FindUpward walks from startDir upward looking for a file named
// "bgui.toml".
func FindUpward(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start dir: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "bgui.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads a bgui.toml file and overlays its fields onto Default().
func Load(path string) (Heuristics, error) {
	h := Default()
	var parsed fileFormat
	if _, err := toml.DecodeFile(path, &parsed); err != nil {
		return Heuristics{}, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	ov := parsed.Heuristics
	if ov.MaxNameLength != nil {
		h.MaxNameLength = *ov.MaxNameLength
	}
	if ov.MaxContainerID != nil {
		h.MaxContainerID = *ov.MaxContainerID
	}
	if ov.ResourceFlagsLength != nil {
		h.ResourceFlagsLength = *ov.ResourceFlagsLength
	}
	if ov.MaxResourceStringLength != nil {
		h.MaxResourceStringLength = *ov.MaxResourceStringLength
	}
	if ov.MaxManifestStringLength != nil {
		h.MaxManifestStringLength = *ov.MaxManifestStringLength
	}
	if ov.MaxManifestStringCount != nil {
		h.MaxManifestStringCount = *ov.MaxManifestStringCount
	}
	if ov.RegisterSignatureScanWindow != nil {
		h.RegisterSignatureScanWindow = *ov.RegisterSignatureScanWindow
	}
	return h, nil
}

// LoadFromDir discovers and loads bgui.toml starting at dir, returning
// Default() unchanged if no such file exists.
func LoadFromDir(dir string) (Heuristics, error) {
	path, ok, err := FindUpward(dir)
	if err != nil {
		return Heuristics{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
