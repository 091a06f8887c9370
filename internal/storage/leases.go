package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AcquireLease attempts to take a TTL-bounded lease on a key with a unique
// token. Returns true on acquisition. An expired lease held by another token
// is taken over atomically; a live one is left alone.
func (s *Store) AcquireLease(key, token string, ttl time.Duration) (bool, error) {
	now := time.Now().UnixMilli()
	expires := now + ttl.Milliseconds()

	query := s.dialect.Rebind(`INSERT INTO leases (key, token, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, expires_at = excluded.expires_at
		WHERE leases.expires_at < ?`)
	res, err := s.db.Exec(query, key, token, expires, now)
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %s: %w", key, err)
	}
	return affected > 0, nil
}

// ReleaseLease releases a lease only if it is still held by the given token
// (compare-and-delete). Returns true if the lease was released.
func (s *Store) ReleaseLease(key, token string) (bool, error) {
	query := s.dialect.Rebind("DELETE FROM leases WHERE key = ? AND token = ?")
	res, err := s.db.Exec(query, key, token)
	if err != nil {
		return false, fmt.Errorf("failed to release lease %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to release lease %s: %w", key, err)
	}
	return affected > 0, nil
}

// LeaseHolder returns the token currently holding a live lease on the key, or
// empty string if the key is unleased or expired.
func (s *Store) LeaseHolder(key string) (string, error) {
	query := s.dialect.Rebind("SELECT token FROM leases WHERE key = ? AND expires_at >= ?")

	var token string
	err := s.db.QueryRow(query, key, time.Now().UnixMilli()).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read lease %s: %w", key, err)
	}
	return token, nil
}
