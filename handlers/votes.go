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

type VoteHandler struct {
	ledger *store.VoteLedger
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{ledger: store.NewVoteLedger(db)}
}

// Cast handles POST /problems/{id}/votes
//
// A repeat vote is not an error: the response is 200 with status
// "already_voted" and a redirect to the tally, and the earlier vote
// stands untouched.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("id")
	if problemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "problem_id is required")
		return
	}

	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "login required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SelectedOption == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selected_option is required")
		return
	}

	resultsPath := "/problems/" + problemID + "/results"

	vote, err := h.ledger.Cast(account, problemID, req.SelectedOption)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Problem not found")
		return
	case errors.Is(err, store.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "selected option is not one of the problem's options")
		return
	case errors.Is(err, store.ErrAlreadyVoted):
		slog.Info("repeat vote ignored", "problem_id", problemID, "account_id", account.ID)
		middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
			Status:   models.VoteAlreadyCast,
			Redirect: resultsPath,
			Message:  "you have already voted on this problem; the earlier vote stands",
		})
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "problem_id", problemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "problem_id", problemID, "vote_id", vote.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Status:   models.VoteRecorded,
		VoteID:   vote.ID,
		Redirect: resultsPath,
	})
}

// Results handles GET /problems/{id}/results
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("id")
	if problemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "problem_id is required")
		return
	}

	tally, err := h.ledger.Tally(problemID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Problem not found")
		return
	}
	if err != nil {
		slog.Error("failed to tally votes", "error", err, "problem_id", problemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}
