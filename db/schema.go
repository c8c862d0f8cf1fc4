// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always supplied by the application so the DDL parses
// identically under SQLite and PostgreSQL.
const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_host BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_account_email ON account(email);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id),
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_account ON session(account_id);

-- Problems
CREATE TABLE IF NOT EXISTS problem (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image_url TEXT,
    creator_id TEXT REFERENCES account(id),
    created_at TIMESTAMP NOT NULL
);

-- Options, ordered by position within their problem
CREATE TABLE IF NOT EXISTS problem_option (
    problem_id TEXT NOT NULL REFERENCES problem(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (problem_id, position),
    UNIQUE (problem_id, label)
);

-- Votes: one per (account, problem), enforced here rather than in
-- application code so concurrent casts cannot both land
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id),
    problem_id TEXT NOT NULL REFERENCES problem(id) ON DELETE CASCADE,
    selected_option TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (account_id, problem_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_problem ON vote(problem_id);
`
