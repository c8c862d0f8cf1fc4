// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/nanikiru/server/auth"
	"github.com/nanikiru/server/cliparse"
	"github.com/nanikiru/server/middleware"
	"github.com/nanikiru/server/models"
	"github.com/nanikiru/server/store"
)

type AccountHandler struct {
	accounts *store.AccountStore
	sessions *store.SessionStore
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{
		accounts: store.NewAccountStore(db),
		sessions: store.NewSessionStore(db, cfg.SessionTTL),
	}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	// Limits are character counts, not byte counts: multibyte usernames
	// within the limit must pass
	req.Username = strings.TrimSpace(req.Username)
	if n := utf8.RuneCountInString(req.Username); n < models.UsernameMinLen || n > models.UsernameMaxLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-20 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < models.PasswordMinLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.Password != req.ConfirmPassword {
		middleware.ErrorResponse(w, http.StatusBadRequest, "passwords must match")
		return
	}

	account, err := h.accounts.Create(req.Username, req.Email, req.Password, req.IsHost)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "username or email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to create account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("account registered", "account_id", account.ID, "username", account.Username, "is_host", account.IsHost)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		AccountID: account.ID,
		Username:  account.Username,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.accounts.Authenticate(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// Unknown email and wrong password are indistinguishable here
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	session, err := h.sessions.Start(account.ID)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt)

	slog.Info("login", "account_id", account.ID, "username", account.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Account:  account,
		Redirect: safeRedirect(req.Next),
	})
}

// Logout handles POST /logout. Idempotent: logging out without a
// session is fine.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.sessions.End(token); err != nil {
			slog.Error("failed to end session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "login required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, account)
}

// safeRedirect restricts post-login redirects to relative paths.
// "//host" and "/\host" are both scheme-relative in browsers, which
// normalize the backslash; neither may pass.
func safeRedirect(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, `/\`) {
		return next
	}
	return "/problems"
}
