// Package titles implements the title cache manager: it reconciles a
// persisted file-to-title mapping against the current content file set and
// holds the result in memory for downstream consumers.
package titles

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/adapter/flatfile"
	"github.com/vertextoedge/site-title-cache/internal/adapter/sqlite"
	"github.com/vertextoedge/site-title-cache/internal/config"
	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/extract"
	"github.com/vertextoedge/site-title-cache/internal/port"
)

// OpenStore is the capability probe: it returns the persistence backend for
// the configured cache, or nil when caching is disabled or the backend
// cannot be opened. A nil store is not an error; the manager runs with an
// empty cache and a forced full reindex.
func OpenStore(cfg *config.Config, logger *zap.Logger) port.TitleStore {
	if !cfg.Cache.Enabled {
		logger.Debug("title caching disabled by configuration")
		return nil
	}

	var (
		store port.TitleStore
		err   error
	)
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		store, err = sqlite.Open(cfg.Cache.GetSQLitePath(cfg.Site.StateDir))
	default:
		store, err = flatfile.Open(cfg.Cache.GetTitlesFile(cfg.Site.StateDir))
	}
	if err != nil {
		logger.Warn("title cache backend unavailable, caching disabled for this run",
			zap.String("backend", cfg.Cache.Backend),
			zap.Error(err))
		return nil
	}

	return store
}

// Manager owns the title cache state for one indexing run. It is not safe
// for concurrent use; concurrent requests each construct their own manager
// over the shared store.
type Manager struct {
	store    port.TitleStore
	index    port.FileIndex
	registry *extract.Registry
	logger   *zap.Logger

	titles   map[string]string
	loadedOK bool
	dirty    bool
}

// RunResult summarizes one indexing run
type RunResult struct {
	Directive domain.ReindexDirective
	LoadedOK  bool
	Mutated   int
	Entries   int
	Saved     bool
}

// New creates a manager for one run. A nil store means caching is disabled:
// loads report a cold cache and saves become no-ops.
func New(store port.TitleStore, idx port.FileIndex, registry *extract.Registry, logger *zap.Logger) *Manager {
	if registry == nil {
		registry = extract.NewRegistry()
	}
	return &Manager{
		store:    store,
		index:    idx,
		registry: registry,
		logger:   logger,
		titles:   make(map[string]string),
	}
}

// CachingEnabled reports whether a persistence backend is attached.
func (m *Manager) CachingEnabled() bool {
	return m.store != nil
}

// Load reads the persisted mapping into memory. It returns false, with the
// in-memory mapping reset to empty, when caching is disabled or the store
// is missing, unreadable or corrupt; the caller then gets a full reindex.
// Load never fails the run.
func (m *Manager) Load() bool {
	m.titles = make(map[string]string)
	m.loadedOK = false
	m.dirty = false

	if m.store == nil {
		return false
	}

	titles, err := m.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrCacheMissing) {
			m.logger.Debug("no persisted title cache, starting empty")
		} else {
			m.logger.Warn("title cache unusable, starting empty", zap.Error(err))
		}
		return false
	}

	m.titles = titles
	m.loadedOK = true
	m.logger.Debug("title cache loaded", zap.Int("entries", len(titles)))
	return true
}

// ExtractTitle derives the title for one file record. Pure with respect to
// cache state; reconciliation and consumers share this entry point.
func (m *Manager) ExtractTitle(rec domain.FileRecord) string {
	return m.registry.TitleFor(rec, m.index.FormatFor(rec.Extension))
}

// Reconcile brings the cache in line with the current file set according to
// the directive and returns the IDs it mutated, sorted. Branches in strict
// priority order:
//
//  1. Full reindex when the directive says All or the cache did not load:
//     every title is recomputed and the key set becomes exactly the file set.
//  2. Category reindex when the directive names an existing category:
//     titles within that subtree are recomputed, everything else is left
//     untouched, stale entries included.
//  3. Otherwise incremental add: titles are computed only for files missing
//     from the cache; cached titles are assumed immutable.
//  4. A deletion pass runs after branch 3 only for an explicit delete
//     directive, dropping entries for files no longer in the set.
func (m *Manager) Reconcile(d domain.ReindexDirective) []string {
	files := m.index.Files()
	var mutated []string

	switch {
	case d.Kind == domain.DirectiveAll || !m.loadedOK:
		rebuilt := make(map[string]string, len(files))
		for id, rec := range files {
			rebuilt[id] = m.ExtractTitle(rec)
			mutated = append(mutated, id)
		}
		m.titles = rebuilt

	case d.Kind == domain.DirectiveCategory && m.index.CategoryExists(d.Category):
		for id, rec := range files {
			if domain.CategoryWithin(rec.Category, d.Category) {
				m.titles[id] = m.ExtractTitle(rec)
				mutated = append(mutated, id)
			}
		}

	default:
		for id, rec := range files {
			if _, ok := m.titles[id]; !ok {
				m.titles[id] = m.ExtractTitle(rec)
				mutated = append(mutated, id)
			}
		}
		if d.Kind == domain.DirectiveDelete {
			for id := range m.titles {
				if _, ok := files[id]; !ok {
					delete(m.titles, id)
					mutated = append(mutated, id)
				}
			}
		}
	}

	if len(mutated) > 0 {
		m.dirty = true
	}
	sort.Strings(mutated)

	m.logger.Info("title cache reconciled",
		zap.String("directive", d.Kind.String()),
		zap.String("category", d.Category),
		zap.Bool("loaded", m.loadedOK),
		zap.Int("mutated", len(mutated)),
		zap.Int("entries", len(m.titles)))

	return mutated
}

// Save persists the mapping. It is a no-op when caching is disabled or when
// reconciliation produced no mutation. A write failure leaves the run with
// its memory-only mapping; the caller decides whether to log or abort.
func (m *Manager) Save() error {
	if m.store == nil || !m.dirty {
		return nil
	}

	if err := m.store.Save(m.titles); err != nil {
		return err
	}

	m.dirty = false
	m.logger.Debug("title cache saved", zap.Int("entries", len(m.titles)))
	return nil
}

// Title returns the cached title for a file ID.
func (m *Manager) Title(id string) (string, bool) {
	title, ok := m.titles[id]
	return title, ok
}

// Titles returns the in-memory mapping for downstream consumers. Callers
// must not mutate it.
func (m *Manager) Titles() map[string]string {
	return m.titles
}

// Run executes one complete indexing pass: load, reconcile, save. Write
// failures are logged and the run keeps its memory-only mapping, favoring
// availability over persistence.
func (m *Manager) Run(d domain.ReindexDirective) *RunResult {
	loadedOK := m.Load()
	mutated := m.Reconcile(d)

	saved := false
	if err := m.Save(); err != nil {
		m.logger.Warn("failed to persist title cache, continuing with in-memory titles",
			zap.Error(err))
	} else {
		saved = m.CachingEnabled() && len(mutated) > 0
	}

	return &RunResult{
		Directive: d,
		LoadedOK:  loadedOK,
		Mutated:   len(mutated),
		Entries:   len(m.titles),
		Saved:     saved,
	}
}
