package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindUpwardLocatesFileInParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bgui.toml"), []byte("[heuristics]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	child := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}

	path, ok, err := FindUpward(child)
	if err != nil {
		t.Fatalf("FindUpward() error: %v", err)
	}
	if !ok {
		t.Fatal("FindUpward() ok = false, want true")
	}
	want, _ := filepath.Abs(filepath.Join(root, "bgui.toml"))
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}

func TestFindUpwardNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindUpward(dir)
	if err != nil {
		t.Fatalf("FindUpward() error: %v", err)
	}
	if ok {
		t.Fatal("FindUpward() ok = true, want false with no bgui.toml anywhere upward")
	}
}

func TestLoadOverlaysOnlyDeclaredFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bgui.toml")
	content := "[heuristics]\nmax_name_length = 32\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	h, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def := Default()
	if h.MaxNameLength != 32 {
		t.Fatalf("MaxNameLength = %d, want 32", h.MaxNameLength)
	}
	if h.MaxContainerID != def.MaxContainerID {
		t.Fatalf("MaxContainerID = %d, want the default %d (not overridden)", h.MaxContainerID, def.MaxContainerID)
	}
}

func TestLoadFromDirFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	h, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error: %v", err)
	}
	if h != Default() {
		t.Fatalf("LoadFromDir() = %+v, want Default() when no bgui.toml exists", h)
	}
}
