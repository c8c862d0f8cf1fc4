// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires routes to handlers using Go 1.22+ method patterns
on the stdlib ServeMux.

Every protected route is wrapped with the access-policy gate before
logging reaches the handler, so the capability check happens before
dispatch:

	public:        /health, /register, /login, /logout, /
	authenticated: /me, /problems (GET), /problems/{id},
	               /problems/{id}/votes, /problems/{id}/results
	host:          /problems (POST)
*/
package router
