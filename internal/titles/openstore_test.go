package titles

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/config"
)

func probeConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Backend = backend
	cfg.Site.StateDir = filepath.Join(t.TempDir(), "state")
	return cfg
}

func TestOpenStoreDisabledByConfig(t *testing.T) {
	cfg := probeConfig(t, config.BackendFile)
	cfg.Cache.Enabled = false

	if store := OpenStore(cfg, zap.NewNop()); store != nil {
		t.Error("OpenStore() should return nil when caching is disabled")
	}
}

func TestOpenStoreFileBackend(t *testing.T) {
	cfg := probeConfig(t, config.BackendFile)

	store := OpenStore(cfg, zap.NewNop())
	if store == nil {
		t.Fatal("OpenStore() = nil, want a file-backed store")
	}
	defer store.Close()

	if err := store.Save(map[string]string{"a.txt": "A"}); err != nil {
		t.Fatalf("Save() through probed store failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Site.StateDir, "titles.dat")); err != nil {
		t.Errorf("expected titles.dat in state dir: %v", err)
	}
}

func TestOpenStoreSQLiteBackend(t *testing.T) {
	cfg := probeConfig(t, config.BackendSQLite)

	store := OpenStore(cfg, zap.NewNop())
	if store == nil {
		t.Fatal("OpenStore() = nil, want a sqlite-backed store")
	}
	defer store.Close()

	if err := store.Save(map[string]string{"a.txt": "A"}); err != nil {
		t.Fatalf("Save() through probed store failed: %v", err)
	}
}

func TestOpenStoreBackendFailureDisablesCaching(t *testing.T) {
	cfg := probeConfig(t, config.BackendSQLite)

	// Occupy the state dir path with a regular file so the backend
	// cannot create its directory.
	blocker := filepath.Dir(cfg.Site.StateDir)
	if err := os.RemoveAll(blocker); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(blocker, []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	if store := OpenStore(cfg, zap.NewNop()); store != nil {
		t.Error("OpenStore() should fail soft to nil when the backend cannot open")
	}
}
