package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by drivers when a document does not exist.
	// Load turns it into an empty collection, so it never reaches services.
	ErrNotFound = errors.New("store: not found")

	// ErrUnavailable means a document could not be read, decoded or written.
	ErrUnavailable = errors.New("store: unavailable")

	// ErrInvalidName rejects document names that could escape the store root.
	ErrInvalidName = errors.New("store: invalid document name")
)

// Driver names a Store backend.
type Driver string

const (
	DriverFS       Driver = "fs"
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

// Collection names.
const (
	Users   = "users"
	Clients = "clients"
)

// Store persists whole named documents as opaque bytes. A Write replaces the
// previous document in full; readers never observe a partial write.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error

	Driver() Driver
}

// ValidateName checks a document name before a driver turns it into a path,
// key or row.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
