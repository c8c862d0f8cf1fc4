// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the nanikiru API server.

Nanikiru is a small polling service for tile-discard scenarios: host
accounts publish problems (a title, a description, and a fixed set of
selectable options), every registered account casts exactly one vote per
problem, and aggregate tallies are visible afterwards.

# Starting the Server

The server reads configuration from environment variables (optionally a
.env file) or CLI flags:

	DATABASE_URL=nanikiru.db go run .

Or with flags:

	go run . -p 8090 -d nanikiru.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8090)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SESSION_TTL (--session-ttl): session lifetime (default: 720h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, problems, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: session gate, logging, JSON helpers
  - store: account store, problem catalog, vote ledger, session authority
  - models: domain and request/response types
  - auth: credential hashing and session token generation
  - db: schema creation and driver error classification
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
