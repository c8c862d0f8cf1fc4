// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides request logging, JSON helpers, CORS, and the
access-policy gate.

The gate distinguishes two capability levels:

  - CapAuthenticated: any logged-in account
  - CapHost: logged-in account with the host role

The router wraps protected handlers with RequireCapability, which
resolves the session cookie to an account before dispatch and stores it
on the request context:

	mux.HandleFunc("POST /problems",
		middleware.WithLogging(
			middleware.RequireCapability(sessions, middleware.CapHost, h.Create)))

Handlers read the resolved identity back with AccountFromContext.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with header Content-Type; the origin is
reflected so cookie-carrying requests work cross-origin.
*/
package middleware
