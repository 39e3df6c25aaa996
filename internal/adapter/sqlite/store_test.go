package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vertextoedge/site-title-cache/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "titles.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Load(); !errors.Is(err, domain.ErrCacheMissing) {
		t.Errorf("Load() on fresh database error = %v, want ErrCacheMissing", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := map[string]string{
		"stories/first.txt": "My First Story",
		"about.html":        "About <em>us</em> &amp; friends",
		"empty.txt":         "",
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Load() returned %d entries, want %d", len(got), len(want))
	}
	for id, title := range want {
		if got[id] != title {
			t.Errorf("title[%q] = %q, want %q", id, got[id], title)
		}
	}
}

func TestSaveReplacesWholeMapping(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(map[string]string{"a.txt": "A", "b.txt": "B"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(map[string]string{"a.txt": "A2"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got["a.txt"] != "A2" {
		t.Errorf("Load() after replacing save = %v, want only a.txt=A2", got)
	}
}
