package content

import "errors"

var (
	// ErrNotFound means no content item resolves for a slug. A malformed
	// file behind a slug reports the same error; callers only need to
	// know the item is unavailable.
	ErrNotFound = errors.New("content not found")

	// ErrDirectoryUnavailable means a kind's directory cannot be listed.
	// An empty directory is not an error; it is a valid empty result.
	ErrDirectoryUnavailable = errors.New("content directory unavailable")
)
