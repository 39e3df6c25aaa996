// Package index holds the in-memory view of the content file set: the
// authoritative file list, the extension-to-format mapping and the category
// tree. The title cache treats it as read-only input.
package index

import (
	"strings"

	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/port"
)

// Index implements port.FileIndex
type Index struct {
	files      map[string]domain.FileRecord
	categories map[string]struct{}
	formats    map[string]domain.Format
}

// Ensure Index implements port.FileIndex
var _ port.FileIndex = (*Index)(nil)

// New creates an empty index recognizing the given extensions. Extensions
// are given without the leading dot; matching is case-insensitive.
func New(htmlExtensions, textExtensions []string) *Index {
	formats := make(map[string]domain.Format, len(htmlExtensions)+len(textExtensions))
	for _, ext := range htmlExtensions {
		formats[strings.ToLower(ext)] = domain.FormatHTML
	}
	for _, ext := range textExtensions {
		formats[strings.ToLower(ext)] = domain.FormatText
	}

	return &Index{
		files:      make(map[string]domain.FileRecord),
		categories: map[string]struct{}{"": {}},
		formats:    formats,
	}
}

// Recognized reports whether files with this extension are indexed at all.
func (i *Index) Recognized(extension string) bool {
	_, ok := i.formats[strings.ToLower(extension)]
	return ok
}

// Add inserts a file record, registering its category and every ancestor
// category along the way.
func (i *Index) Add(rec domain.FileRecord) {
	i.files[rec.ID] = rec

	cat := rec.Category
	for cat != "" {
		i.categories[cat] = struct{}{}
		slash := strings.LastIndex(cat, "/")
		if slash < 0 {
			break
		}
		cat = cat[:slash]
	}
}

// Files implements port.FileIndex
func (i *Index) Files() map[string]domain.FileRecord {
	return i.files
}

// FormatFor implements port.FileIndex. Unrecognized extensions resolve to
// the plain-text family.
func (i *Index) FormatFor(extension string) domain.Format {
	if f, ok := i.formats[strings.ToLower(extension)]; ok {
		return f
	}
	return domain.FormatText
}

// CategoryExists implements port.FileIndex
func (i *Index) CategoryExists(category string) bool {
	_, ok := i.categories[category]
	return ok
}

// Len returns the number of indexed files.
func (i *Index) Len() int {
	return len(i.files)
}
