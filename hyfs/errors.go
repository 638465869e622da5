// Package hyfs implements the entity-identity and indexed-storage core.
package hyfs

import "errors"

// Sentinel errors for package hyfs.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Store errors
	ErrNotFound      = errors.New("entity not found in store")
	ErrAmbiguousRoot = errors.New("multiple roots found, specify root path")
	ErrBadPattern    = errors.New("malformed glob pattern")

	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrUnexpectedSymlink = errors.New("expected file or directory, got symlink")
)
