package domain

import "errors"

// Common domain errors
var (
	// ErrCacheMissing reports that no persisted title mapping exists yet.
	// Loads treat it as a cold start, not a failure.
	ErrCacheMissing = errors.New("no persisted cache")

	// ErrCacheCorrupt reports that a persisted mapping exists but cannot
	// be decoded.
	ErrCacheCorrupt = errors.New("cache payload corrupt")
)
