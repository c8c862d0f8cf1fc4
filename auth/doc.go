// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and session token generation.

Passwords are hashed with bcrypt (salted, deliberately slow) before they
reach the database; raw passwords never leave the registration and login
handlers. Verification failures surface as a single ErrInvalidCredentials
regardless of whether the email was unknown or the password wrong.

Session tokens are 192-bit random values, URL-safe base64 without
padding:

	token, err := auth.GenerateSessionToken()

The token is opaque to the client; the store layer maps it to an account.
*/
package auth
