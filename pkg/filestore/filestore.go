package filestore

import "errors"

// ErrNoLocation is returned by every operation when the store has no backing
// location configured.
var ErrNoLocation = errors.New("file store has no backing location configured")

// ErrInvalidKey is returned when a key contains path separators or otherwise
// cannot name a file inside the backing location.
var ErrInvalidKey = errors.New("invalid file store key")

// Store is an abstract key-value file store. Keys are flat file names, values
// are UTF-8 text documents.
type Store interface {
	// ListKeys returns all keys currently present in the store.
	ListKeys() ([]string, error)
	// Read returns the content for key. The boolean reports whether the key
	// exists; a missing key is not an error.
	Read(key string) (string, bool, error)
	// Write stores content under key, replacing any previous value.
	Write(key string, content string) error
	// Remove deletes key and reports whether it was present. Removing an
	// absent key is not an error.
	Remove(key string) (bool, error)
	// Exists reports whether key is present.
	Exists(key string) (bool, error)
}
