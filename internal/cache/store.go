// Package cache stores synthesized audio clips as plain MP3 files on disk.
//
// Unlike a general-purpose blob cache there is no index, no compression, and no
// eviction: filenames are an external contract (hook scripts and the project
// template reference clips like work-complete.mp3 directly), so every entry is
// exactly the bytes the synthesis provider returned, under exactly the name the
// phrase resolver computed. Entries are written once and never updated in
// place; cleanup is left to the user.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned by Read when no entry exists for the filename.
var ErrNotFound = errors.New("cache entry not found")

// Entry describes a single cached clip.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Store is a flat directory of MP3 blobs keyed by filename.
//
// The directory is created lazily on the first write, so a Store can be opened
// against a path that does not exist yet. Concurrent writers for the same key
// are not coordinated: last writer wins, which is acceptable because two writes
// for the same phrase hold identical-enough content.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. No filesystem access happens here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute location an entry would occupy.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether an entry is present for name.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the full contents of a cached entry.
func (s *Store) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry %s: %w", name, err)
	}
	return data, nil
}

// Write persists data under name, creating the cache directory (and any missing
// parents) first. The write goes through a temp file and rename so a crash
// mid-write never leaves a truncated clip under the final name.
func (s *Store) Write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	path := s.Path(name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		os.Remove(tmp)
		return fmt.Errorf("write cache file: %w", werr)
	}
	if cerr != nil {
		os.Remove(tmp)
		return fmt.Errorf("close cache file: %w", cerr)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize cache file: %w", err)
	}
	return nil
}

// List returns every cached clip, newest first. A missing cache directory is an
// empty cache, not an error.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".mp3") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// Clear removes every cached clip. The directory itself is kept.
func (s *Store) Clear() (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if err := os.Remove(s.Path(e.Name)); err != nil {
			return removed, fmt.Errorf("remove cache entry %s: %w", e.Name, err)
		}
		removed++
	}
	return removed, nil
}
