// Package storage implements the ledger's data layer: a SQLite-backed
// repository for users, categories and transactions, schema migrations,
// and the aggregate statistics queries.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	applog "tally/internal/log"

	_ "modernc.org/sqlite"
)

// Repository is the ledger's single data-access object. It holds one
// shared connection so that every read observes the preceding write.
type Repository struct {
	db   *sql.DB
	boot *Bootstrap
	log  *applog.Logger
}

// Open opens (creating if necessary) the SQLite store at dbPath and starts
// the schema bootstrap in the background. Callers must wait for
// WaitReady before issuing any other operation.
func Open(dbPath string, logger *applog.Logger) (*Repository, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite serializes writes anyway; a single connection additionally
	// guarantees read-after-write visibility and keeps :memory: stores,
	// which exist per connection, coherent.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	storageLog := logger.WithComponent(applog.ComponentStorage)
	repo := &Repository{
		db:   db,
		boot: startBootstrap(db, logger.WithComponent(applog.ComponentBootstrap)),
		log:  storageLog,
	}

	storageLog.Info("ledger store opened", applog.FieldDBPath, dbPath)
	return repo, nil
}

// Bootstrap returns the migration bootstrap for readiness polling.
func (r *Repository) Bootstrap() *Bootstrap {
	return r.boot
}

// Close closes the underlying connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
