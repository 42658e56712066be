package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddContains(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "history.log"))

	s.Add("https://a.example")
	s.Add("https://b.example")
	s.Add("https://a.example")

	if s.Len() != 2 {
		t.Errorf("got %d entries, expected 2", s.Len())
	}
	if !s.Contains("https://a.example") {
		t.Error("expected a.example to be present")
	}
	if s.Contains("https://c.example") {
		t.Error("c.example should not be present")
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.log"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("got %d entries, expected 0", s.Len())
	}
}

func TestSaveKeepsMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.log")
	s := New(path)
	for _, u := range []string{"one", "two", "three", "four"} {
		s.Add(u)
	}

	if err := s.Save(2); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "three\nfour" {
		t.Errorf("got %q, expected %q", got, "three\nfour")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := loaded.order
	if len(entries) != 2 || entries[0] != "three" || entries[1] != "four" {
		t.Errorf("got %v", entries)
	}
}

func TestSaveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	s := New(path)
	s.Add("one")
	s.Add("two")

	if err := s.Save(0); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Errorf("got %d entries, expected 2", loaded.Len())
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	if err := os.WriteFile(path, []byte("one\n\n  two  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("two") || s.Len() != 2 {
		t.Errorf("got %v", s.order)
	}
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	s := New(path)
	s.Add("one")
	if err := s.Save(10); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 || s.Contains("one") {
		t.Error("store should be empty after Delete")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("history file should be gone, stat err = %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Errorf("deleting twice should be fine, got %v", err)
	}
}
