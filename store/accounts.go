// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nanikiru/server/auth"
	"github.com/nanikiru/server/db"
	"github.com/nanikiru/server/models"
)

// AccountStore persists user accounts. Usernames and emails are globally
// unique; uniqueness is enforced by the database, not by a pre-check.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(database *sql.DB) *AccountStore {
	return &AccountStore{db: database}
}

// Create registers a new account with a bcrypt-hashed credential.
// Returns ErrConflict if the username or email is already taken.
func (s *AccountStore) Create(username, email, rawPassword string, isHost bool) (models.Account, error) {
	hash, err := auth.HashPassword(rawPassword)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsHost:       isHost,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.Exec(`
		INSERT INTO account (id, username, email, password_hash, is_host, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, account.ID, account.Username, account.Email, account.PasswordHash, account.IsHost, account.CreatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Account{}, ErrConflict
		}
		return models.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}

	return account, nil
}

// Authenticate looks up an account by email and verifies the password.
// Unknown email and wrong password both return auth.ErrInvalidCredentials.
func (s *AccountStore) Authenticate(email, rawPassword string) (models.Account, error) {
	account, err := s.byColumn("email", email)
	if err == ErrNotFound {
		return models.Account{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, err
	}

	if err := auth.CheckPassword(account.PasswordHash, rawPassword); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// ByID resolves an account id. Returns ErrNotFound for unknown ids.
func (s *AccountStore) ByID(id string) (models.Account, error) {
	return s.byColumn("id", id)
}

func (s *AccountStore) byColumn(column, value string) (models.Account, error) {
	var account models.Account
	err := s.db.QueryRow(`
		SELECT id, username, email, password_hash, is_host, created_at
		FROM account
		WHERE `+column+` = $1
	`, value).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.IsHost, &account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to query account: %w", err)
	}

	return account, nil
}
