package port

// TitleStore is the persistence primitive for the title mapping. A store
// must round-trip a string-to-string mapping faithfully, including empty
// strings and markup-derived text, and must be safe against concurrent
// processes reading and writing the same backing state.
type TitleStore interface {
	// Load reads the persisted mapping. When no persisted state exists the
	// error is domain.ErrCacheMissing; unreadable or corrupt payloads yield
	// other errors. Callers treat every error as a cold cache.
	Load() (map[string]string, error)

	// Save atomically replaces the persisted mapping.
	Save(titles map[string]string) error

	// Close releases backend resources.
	Close() error
}
