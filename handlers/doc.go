// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the nanikiru API.

# Handler Types

Each handler is a struct built over the store repositories:

  - AccountHandler: registration, login, logout, current identity
  - ProblemHandler: problem creation (host only), listing, detail
  - VoteHandler: vote casting and tally retrieval

Handlers are created via constructor functions that accept *sql.DB and
Config:

	accountHandler := handlers.NewAccountHandler(db, cfg)

# Auth Flow

	POST /register → Register (username, email, password, confirm, is_host)
	POST /login    → Login (sets the session cookie, returns a redirect target)
	POST /logout   → Logout (idempotent)
	GET  /me       → Me

# Voting Flow

All problem and vote routes require a session; problem creation requires
the host role. The gates live in the router (middleware.RequireCapability),
so a rejected request never reaches its handler.

	GET  /problems               → List
	POST /problems               → Create (host)
	GET  /problems/{id}          → Get
	POST /problems/{id}/votes    → Cast
	GET  /problems/{id}/results  → Results

Casting twice is not a failure: the second cast returns 200 with status
"already_voted" and a redirect to the results path, and the stored vote
is left untouched.
*/
package handlers
