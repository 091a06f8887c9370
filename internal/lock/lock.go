// Package lock provides the room mutual-exclusion guard. All action
// resolution and monster turns for a room run inside WithLock so that two
// players in the same room can never interleave their reads and writes of the
// room's monster instances.
package lock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hollowfall/delve/internal/logger"
)

// ErrLockUnavailable is returned when the lease could not be acquired within
// the retry budget. The critical section never started; no mutation occurred.
var ErrLockUnavailable = errors.New("room lock unavailable")

// LeaseStore is the atomic lease primitive the guard runs on.
type LeaseStore interface {
	AcquireLease(key, token string, ttl time.Duration) (bool, error)
	ReleaseLease(key, token string) (bool, error)
}

// Default retry budget.
const (
	DefaultAttempts = 5
	DefaultBackoff  = 50 * time.Millisecond
)

// Guard serializes access to room encounter state via TTL-bounded leases.
type Guard struct {
	store    LeaseStore
	Attempts int
	Backoff  time.Duration
}

// NewGuard creates a guard over the given lease store with default retries.
func NewGuard(store LeaseStore) *Guard {
	return &Guard{
		store:    store,
		Attempts: DefaultAttempts,
		Backoff:  DefaultBackoff,
	}
}

// WithLock acquires a uniquely-tokened lease on the room, runs fn, and
// releases the lease on every exit path. Acquisition retries with backoff up
// to the attempt budget and then fails fast with ErrLockUnavailable.
func (g *Guard) WithLock(roomID string, ttl time.Duration, fn func() error) error {
	key := "room:" + roomID
	token := uuid.NewString()

	acquired := false
	for attempt := 0; attempt < g.Attempts; attempt++ {
		ok, err := g.store.AcquireLease(key, token, ttl)
		if err != nil {
			return fmt.Errorf("acquiring lease for %s: %w", roomID, err)
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(g.Backoff)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLockUnavailable, roomID)
	}

	defer func() {
		// A failed release leaves the lease stuck until its TTL expires; make
		// that visible to operators.
		if _, err := g.store.ReleaseLease(key, token); err != nil {
			logger.Warning("failed to release room lease", "room", roomID, "error", err)
		}
	}()
	return fn()
}
