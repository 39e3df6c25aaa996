package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/domain"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func testScanner(root string) *Scanner {
	return New(&Config{
		ContentDir:     root,
		HTMLExtensions: []string{"html", "htm"},
		TextExtensions: []string{"txt", "md"},
	}, zap.NewNop())
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"welcome.txt":           "Welcome\n",
		"about.html":            "<title>About</title>",
		"stories/first.txt":     "First Story\n",
		"stories/short/tiny.md": "Tiny\n",
		"images/logo.png":       "not content",
		".hidden/secret.txt":    "skipped",
		"stories/.draft.txt":    "skipped too",
	})

	idx, result, err := testScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.TotalFiles != 4 {
		t.Errorf("TotalFiles = %d, want 4", result.TotalFiles)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2 (png and dotfile)", result.Skipped)
	}

	files := idx.Files()
	if len(files) != 4 {
		t.Fatalf("indexed %d files, want 4", len(files))
	}

	rec, ok := files["stories/short/tiny.md"]
	if !ok {
		t.Fatal("nested file not indexed")
	}
	if rec.Category != "stories/short" {
		t.Errorf("Category = %q, want %q", rec.Category, "stories/short")
	}
	if rec.Extension != "md" {
		t.Errorf("Extension = %q, want %q", rec.Extension, "md")
	}
	if rec.Basename != "tiny" {
		t.Errorf("Basename = %q, want %q", rec.Basename, "tiny")
	}
	if !filepath.IsAbs(rec.Path) {
		t.Errorf("Path = %q, want absolute", rec.Path)
	}

	rootRec, ok := files["welcome.txt"]
	if !ok {
		t.Fatal("root-level file not indexed")
	}
	if rootRec.Category != "" {
		t.Errorf("root-level Category = %q, want empty", rootRec.Category)
	}

	if !idx.CategoryExists("stories") || !idx.CategoryExists("stories/short") {
		t.Error("scan should register categories and ancestors")
	}
	if idx.CategoryExists(".hidden") {
		t.Error("hidden directories should not become categories")
	}

	if got := idx.FormatFor(files["about.html"].Extension); got != domain.FormatHTML {
		t.Errorf("about.html format = %q, want html", got)
	}
}

func TestScanMissingContentDir(t *testing.T) {
	s := testScanner(filepath.Join(t.TempDir(), "nope"))
	if _, _, err := s.Scan(); err == nil {
		t.Error("Scan() of a missing directory should fail")
	}
}

func TestScanEmptyDir(t *testing.T) {
	idx, result, err := testScanner(t.TempDir()).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.TotalFiles != 0 || idx.Len() != 0 {
		t.Errorf("empty dir scanned %d files", result.TotalFiles)
	}
}
