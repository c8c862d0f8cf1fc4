// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store contains the persistence layer: one repository per entity,
taking and returning plain models types.

# Repositories

  - AccountStore: registration (bcrypt hash, ErrConflict on duplicates),
    login verification, id lookup
  - SessionStore: the session authority - token issue, resolve, end
  - ProblemCatalog: host-gated problem creation, listing, id lookup
  - VoteLedger: one-vote-per-(account, problem) casts and tallying

Each repository wraps *sql.DB and is safe for concurrent use; every
method is a single storage round trip or one explicit transaction, and
no state is cached between calls.

# The one-vote invariant

VoteLedger.Cast never checks-then-inserts. It inserts and lets the
UNIQUE (account_id, problem_id) constraint decide, mapping a violation
to ErrAlreadyVoted. ErrAlreadyVoted is non-fatal: the handler turns it
into a redirect to the tally, and the earlier vote stands.

# Failure taxonomy

Sentinel errors in errors.go (ErrNotFound, ErrConflict, ErrForbidden,
ErrValidation, ErrAlreadyVoted, ErrInvalidOption, ErrNoSession) are
matched with errors.Is at the handler boundary. Validation failures wrap
ErrValidation with a user-facing message.
*/
package store
