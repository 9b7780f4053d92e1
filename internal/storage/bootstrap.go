package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	applog "tally/internal/log"
)

// BootstrapState is the observable state of the schema migration run.
type BootstrapState int

const (
	// StatePending means migrations are still running. Poll or wait; this
	// is never an error.
	StatePending BootstrapState = iota
	// StateReady means the schema is current and the repository is usable.
	StateReady
	// StateFailed means migrations failed. The data layer must not be used.
	StateFailed
)

func (s BootstrapState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("BootstrapState(%d)", int(s))
	}
}

// Bootstrap runs schema migrations in the background and exposes their
// terminal state. Every repository caller must observe StateReady before
// issuing operations.
type Bootstrap struct {
	mu    sync.Mutex
	state BootstrapState
	err   error
	done  chan struct{}
}

// startBootstrap kicks off the migration run for db.
func startBootstrap(db *sql.DB, logger *applog.Logger) *Bootstrap {
	b := &Bootstrap{state: StatePending, done: make(chan struct{})}
	go func() {
		err := runMigrations(db)
		b.mu.Lock()
		if err != nil {
			b.state = StateFailed
			b.err = err
			logger.Error("schema migration failed", applog.FieldError, err)
		} else {
			b.state = StateReady
			logger.Info("schema ready")
		}
		b.mu.Unlock()
		close(b.done)
	}()
	return b
}

// State returns the current state and, for StateFailed, the cause.
func (b *Bootstrap) State() (BootstrapState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state, b.err
}

// Done is closed once the bootstrap reaches a terminal state.
func (b *Bootstrap) Done() <-chan struct{} {
	return b.done
}

// WaitReady blocks until the bootstrap reaches a terminal state or ctx is
// cancelled. It returns nil only for StateReady.
func (b *Bootstrap) WaitReady(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
	}
	if _, err := b.State(); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}
