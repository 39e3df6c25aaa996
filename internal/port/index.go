package port

import "github.com/vertextoedge/site-title-cache/internal/domain"

// FileIndex is the host-side collaborator: the authoritative view of the
// current content file set, populated before the title cache runs.
type FileIndex interface {
	// Files returns the mapping from file ID to record. Callers must not
	// mutate the returned map.
	Files() map[string]domain.FileRecord

	// FormatFor resolves a file extension (no leading dot) to its logical
	// content format.
	FormatFor(extension string) domain.Format

	// CategoryExists reports whether the category path is present in the
	// index, used to validate category-scoped reindex directives.
	CategoryExists(category string) bool
}
