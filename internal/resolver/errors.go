package resolver

import "errors"

// Common errors returned by resolvers.
var (
	// ErrNoMatch indicates the source has no metadata for the identifier.
	ErrNoMatch = errors.New("no metadata found for identifier")

	// ErrOffline indicates resolving is disabled by configuration.
	ErrOffline = errors.New("metadata lookups are disabled (offline)")
)
