// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and driver error classification.

The schema is a single idempotent DDL script applied at startup:

	if err := db.CreateSchema(dbConn); err != nil { ... }

Two uniqueness constraints carry application invariants and are relied on
by the store layer instead of check-then-act sequences:

  - account.username / account.email: global account uniqueness
  - vote (account_id, problem_id): one vote per account per problem

IsUniqueViolation recognizes constraint violations from both supported
drivers (modernc.org/sqlite and lib/pq) so the store layer can map them
to typed failures.
*/
package db
