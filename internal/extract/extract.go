// Package extract derives display titles from content files. Extraction is
// polymorphic over content format: each format registers a TitleExtractor
// and the reconciliation engine only ever talks to the registry, so new
// formats plug in without touching cache logic.
package extract

import (
	"fmt"

	"github.com/vertextoedge/site-title-cache/internal/domain"
)

// TitleExtractor derives a title from one file. An empty title with a nil
// error means the file was readable but carried no usable title; the caller
// applies the fallback chain. A non-nil error means the file could not be
// opened at all.
type TitleExtractor interface {
	ExtractTitle(path string) (string, error)
}

// Registry resolves content formats to their extractors.
type Registry struct {
	byFormat map[domain.Format]TitleExtractor
}

// NewRegistry creates a registry pre-populated with the built-in HTML and
// plain-text extractors.
func NewRegistry() *Registry {
	r := &Registry{byFormat: make(map[domain.Format]TitleExtractor)}
	r.Register(domain.FormatHTML, &HTMLExtractor{})
	r.Register(domain.FormatText, &FirstLineExtractor{})
	return r
}

// Register installs or replaces the extractor for a format.
func (r *Registry) Register(format domain.Format, e TitleExtractor) {
	r.byFormat[format] = e
}

// Lookup returns the extractor registered for a format.
func (r *Registry) Lookup(format domain.Format) (TitleExtractor, bool) {
	e, ok := r.byFormat[format]
	return e, ok
}

// TitleFor derives the title for one file record, applying the fallback
// chain: extractor result, then the file basename when extraction yields
// nothing, then a diagnostic placeholder embedding the path when the file
// cannot be opened. The placeholder is data, not an error; it is cached
// like any other title until a reindex recomputes it.
func (r *Registry) TitleFor(rec domain.FileRecord, format domain.Format) string {
	e, ok := r.byFormat[format]
	if !ok {
		// Unknown formats read like plain text rather than failing the run.
		e = &FirstLineExtractor{}
	}

	title, err := e.ExtractTitle(rec.Path)
	if err != nil {
		return Placeholder(rec.Path)
	}
	if title == "" {
		return rec.Basename
	}
	return title
}

// Placeholder returns the diagnostic title used when a file cannot be opened.
func Placeholder(path string) string {
	return fmt.Sprintf("[unreadable: %s]", path)
}
