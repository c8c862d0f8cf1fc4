// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nanikiru/server/models"
	"github.com/nanikiru/server/store"
)

// SessionCookie carries the opaque session token across requests.
const SessionCookie = "nanikiru_session"

// Capability is the access level a route requires.
type Capability int

const (
	// CapAuthenticated: any non-anonymous account
	CapAuthenticated Capability = iota
	// CapHost: authenticated and is_host
	CapHost
)

type accountKeyType struct{}

var accountKey accountKeyType

// AccountFromContext returns the account resolved by RequireCapability.
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(accountKey).(models.Account)
	return account, ok
}

// RequireCapability gates a handler behind an access level. The session
// token is resolved before dispatch; on failure the handler is never
// invoked, so no partial side effect can occur. Missing or expired
// sessions get 401, authenticated non-hosts hitting a host route get 403.
func RequireCapability(sessions *store.SessionStore, capability Capability, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "login required")
			return
		}

		account, err := sessions.Resolve(token)
		if errors.Is(err, store.ErrNoSession) {
			ErrorResponse(w, http.StatusUnauthorized, "login required")
			return
		}
		if err != nil {
			slog.Error("failed to resolve session", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if capability == CapHost && !account.IsHost {
			ErrorResponse(w, http.StatusForbidden, "host role required")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next(w, r.WithContext(ctx))
	}
}

// SessionToken extracts the session token from the request cookie,
// or "" when the caller is anonymous.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie attaches a session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
