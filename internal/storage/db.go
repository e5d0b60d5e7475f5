// Package storage provides the Badger-backed entry store for the diary.
package storage

import (
	stderrors "errors"
	"os"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/nova728/diary/internal/errors"
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	path string
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := ""

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			if stderrors.Is(err, os.ErrPermission) {
				return nil, errors.NewSystemErrorWithOp("open", "cannot create data directory", errors.ErrPermissionDenied)
			}
			return nil, errors.NewSystemErrorWithOp("open", "cannot create data directory", err)
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
		path = opts.Path
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, classifyOpenError(err)
	}

	return &DB{db: db, path: path}, nil
}

// classifyOpenError maps Badger open failures onto the error taxonomy.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "checksum") || strings.Contains(msg, "corrupt") || strings.Contains(msg, "manifest"):
		return errors.NewSystemErrorWithOp("open", "database is corrupted", stderrors.Join(errors.ErrDatabaseCorrupted, err))
	case strings.Contains(msg, "cannot acquire directory lock"):
		return errors.NewUserError("Another diary process is using the database", "Close the dashboard or other diary commands and retry")
	default:
		return errors.NewSystemErrorWithOp("open", "cannot open database", err)
	}
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
