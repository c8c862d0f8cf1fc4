// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nanikiru/server/cliparse"
	"github.com/nanikiru/server/middleware"
	"github.com/nanikiru/server/models"
	"github.com/nanikiru/server/store"
)

type ProblemHandler struct {
	catalog *store.ProblemCatalog
}

func NewProblemHandler(db *sql.DB, cfg cliparse.Config) *ProblemHandler {
	return &ProblemHandler{catalog: store.NewProblemCatalog(db)}
}

// Create handles POST /problems. The router gates this behind CapHost;
// the catalog re-checks the actor's role before writing anything.
func (h *ProblemHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "login required")
		return
	}

	var req models.CreateProblemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	problem, err := h.catalog.Create(account, req.Title, req.Description, req.Options, req.ImageURL)
	if errors.Is(err, store.ErrForbidden) {
		middleware.ErrorResponse(w, http.StatusForbidden, "host role required")
		return
	}
	if errors.Is(err, store.ErrValidation) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create problem", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create problem")
		return
	}

	slog.Info("problem created", "problem_id", problem.ID, "creator", account.Username, "options", len(problem.Options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProblemResponse{
		ProblemID: problem.ID,
	})
}

// List handles GET /problems
func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	problems, err := h.catalog.List()
	if err != nil {
		slog.Error("failed to list problems", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, problems)
}

// Get handles GET /problems/{id}
func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("id")
	if problemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "problem_id is required")
		return
	}

	problem, err := h.catalog.ByID(problemID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Problem not found")
		return
	}
	if err != nil {
		slog.Error("failed to query problem", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, problem)
}
