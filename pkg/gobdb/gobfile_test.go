package gobdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type settings struct {
	AutoScan     bool
	ScanInterval time.Duration
}

func TestGobFileRoundTrip(t *testing.T) {
	gf := NewGobFile[settings](filepath.Join(t.TempDir(), "settings.gob"))

	if _, err := gf.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := settings{AutoScan: true, ScanInterval: 7 * time.Second}
	if err := gf.Save(want); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	got, err := gf.Load()
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if got != want {
		t.Fatalf("mismatch: got %+v want %+v", got, want)
	}
}

func TestGobFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	gf := NewGobFile[settings](filepath.Join(dir, "settings.gob"))
	gf.Save(settings{})
	gf.Save(settings{AutoScan: true})

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the gob file, got %d entries", len(entries))
	}
}

func TestGobFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.gob")
	os.WriteFile(path, nil, 0644)
	if _, err := NewGobFile[settings](path).Load(); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected an empty file error, got %v", err)
	}
}
