// Package history keeps the set of visited URLs that decides seen/unseen
// styling in listings.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store is an ordered set of URLs backed by a newline separated file.
type Store struct {
	path  string
	set   map[string]struct{}
	order []string
}

// New returns an empty store that saves to path.
func New(path string) *Store {
	return &Store{path: path, set: make(map[string]struct{})}
}

// Load reads the history file at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := New(path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			s.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return s, nil
}

// Contains reports whether url has been visited.
func (s *Store) Contains(url string) bool {
	_, ok := s.set[url]
	return ok
}

// Add records url as visited. Adding a URL twice keeps its first position.
func (s *Store) Add(url string) {
	if _, ok := s.set[url]; ok {
		return
	}
	s.set[url] = struct{}{}
	s.order = append(s.order, url)
}

// Len returns the number of visited URLs.
func (s *Store) Len() int {
	return len(s.order)
}

// Save writes the most recent size entries to disk. A size of zero or less
// writes everything.
func (s *Store) Save(size int) error {
	entries := s.order
	if size > 0 && len(entries) > size {
		entries = entries[len(entries)-size:]
	}
	if err := writeAtomic(s.path, []byte(strings.Join(entries, "\n"))); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Delete removes the history file and forgets every entry.
func (s *Store) Delete() error {
	s.set = make(map[string]struct{})
	s.order = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting history: %w", err)
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
