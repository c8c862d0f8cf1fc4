// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/nanikiru/server/cliparse"
	"github.com/nanikiru/server/handlers"
	"github.com/nanikiru/server/middleware"
	"github.com/nanikiru/server/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared session authority for the access-policy gates
	sessions := store.NewSessionStore(db, cfg.SessionTTL)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	problemHandler := handlers.NewProblemHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireCapability(sessions, middleware.CapAuthenticated, h))
	}
	host := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireCapability(sessions, middleware.CapHost, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account lifecycle (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /me", authed(accountHandler.Me))

	// Problem catalog (authenticated; creation is host-gated)
	mux.HandleFunc("GET /problems", authed(problemHandler.List))
	mux.HandleFunc("POST /problems", host(problemHandler.Create))
	mux.HandleFunc("GET /problems/{id}", authed(problemHandler.Get))

	// Vote ledger (authenticated)
	mux.HandleFunc("POST /problems/{id}/votes", authed(voteHandler.Cast))
	mux.HandleFunc("GET /problems/{id}/results", authed(voteHandler.Results))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nanikiru API v1"))
	})

	return mux
}
