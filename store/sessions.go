// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nanikiru/server/auth"
	"github.com/nanikiru/server/models"
)

// SessionStore maps opaque session tokens to account ids. Each request
// resolves its token independently; there is no in-memory session state,
// so any number of concurrent requests can authenticate against the same
// table.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
}

func NewSessionStore(database *sql.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: database, ttl: ttl}
}

// Start issues a fresh session token for the account. Called once per
// successful login.
func (s *SessionStore) Start(accountID string) (models.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return models.Session{}, err
	}

	now := time.Now().UTC()
	session := models.Session{
		Token:     token,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	_, err = s.db.Exec(`
		INSERT INTO session (token, account_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, session.Token, session.AccountID, session.CreatedAt, session.ExpiresAt)

	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// Resolve returns the account behind a session token. Returns
// ErrNoSession for unknown or expired tokens; anonymous callers are a
// normal, non-error state handled by the caller.
func (s *SessionStore) Resolve(token string) (models.Account, error) {
	var account models.Account
	err := s.db.QueryRow(`
		SELECT a.id, a.username, a.email, a.password_hash, a.is_host, a.created_at
		FROM session s
		JOIN account a ON a.id = s.account_id
		WHERE s.token = $1 AND s.expires_at > $2
	`, token, time.Now().UTC()).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.IsHost, &account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Account{}, ErrNoSession
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to resolve session: %w", err)
	}

	return account, nil
}

// End invalidates a session token. Idempotent: ending an unknown or
// already-ended session is not an error.
func (s *SessionStore) End(token string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
