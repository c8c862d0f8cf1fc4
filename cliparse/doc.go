// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

CLI flags take precedence; environment variables fill in anything left
unset, and main loads a .env file first so local development needs no
exported shell state.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Settings:

  - -p / PORT: server port (default 8090)
  - -d / DATABASE_URL: SQLite file path or PostgreSQL connection string (required)
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"
  - -session-ttl / SESSION_TTL: session lifetime (default 720h)
*/
package cliparse
