package domain

// Format identifies the logical content format of a file, resolved from its
// extension by the file index. Title extractors are registered per format.
type Format string

// Known content formats
const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// FileRecord describes one content file as reported by the file index.
// The index is authoritative; the title cache never mutates records.
type FileRecord struct {
	// ID is the unique key of the file within the index
	// (its path relative to the content root).
	ID string

	// Path is the absolute path used for reading the file.
	Path string

	// Extension is the file extension without the leading dot, lowercased.
	Extension string

	// Category is the hierarchical grouping of the file: the relative
	// directory path with "/" separators and no leading or trailing
	// separator. Files at the content root have category "".
	Category string

	// Basename is the file name without directory or extension, used as
	// the title of last resort.
	Basename string
}
