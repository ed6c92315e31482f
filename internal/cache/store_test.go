package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tts-cache"))

	data := []byte("fake mp3 payload")
	if err := s.Write("test-passed.mp3", data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !s.Exists("test-passed.mp3") {
		t.Fatal("Exists = false after Write")
	}

	got, err := s.Read("test-passed.mp3")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Read = %q, want %q", got, data)
	}
}

func TestStore_WriteCreatesMissingParents(t *testing.T) {
	// The cache dir and its parents must not need to exist up front.
	s := NewStore(filepath.Join(t.TempDir(), "output", "tts-cache"))

	if err := s.Write("all-done.mp3", []byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !s.Exists("all-done.mp3") {
		t.Error("entry missing after Write into fresh directory tree")
	}
}

func TestStore_ReadMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Read("nope.mp3")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read missing entry: err = %v, want ErrNotFound", err)
	}
}

func TestStore_ExistsIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if err := os.MkdirAll(filepath.Join(dir, "oddball.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}
	if s.Exists("oddball.mp3") {
		t.Error("Exists = true for a directory")
	}
}

func TestStore_ListAndClear(t *testing.T) {
	s := NewStore(t.TempDir())

	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		if err := s.Write(name, []byte(name)); err != nil {
			t.Fatalf("Write(%s) failed: %v", name, err)
		}
	}
	// Non-audio files are not cache entries.
	if err := os.WriteFile(s.Path("notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Size == 0 {
			t.Errorf("entry %s has zero size", e.Name)
		}
	}

	removed, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear removed %d entries, want 3", removed)
	}

	entries, err = s.List()
	if err != nil {
		t.Fatalf("List after Clear failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List after Clear returned %d entries, want 0", len(entries))
	}
}

func TestStore_ListMissingDirIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List returned %d entries, want 0", len(entries))
	}
}
