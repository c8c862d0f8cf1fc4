// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nanikiru/server/db"
	"github.com/nanikiru/server/models"
)

// VoteLedger records one vote per (account, problem) pair. Votes are
// append-only evidence: never updated, never deleted.
type VoteLedger struct {
	db *sql.DB
}

func NewVoteLedger(database *sql.DB) *VoteLedger {
	return &VoteLedger{db: database}
}

// Cast records the actor's vote for one of the problem's options.
//
// The one-vote invariant rests on the UNIQUE (account_id, problem_id)
// constraint: the insert either lands or reports a violation, so two
// concurrent casts for the same pair can never both commit. Returns
// ErrNotFound, ErrInvalidOption, or ErrAlreadyVoted.
func (l *VoteLedger) Cast(actor models.Account, problemID, selectedOption string) (models.Vote, error) {
	options, err := l.problemOptions(problemID)
	if err != nil {
		return models.Vote{}, err
	}

	selectedOption = strings.TrimSpace(selectedOption)
	valid := false
	for _, label := range options {
		if label == selectedOption {
			valid = true
			break
		}
	}
	if !valid {
		return models.Vote{}, ErrInvalidOption
	}

	vote := models.Vote{
		ID:             uuid.NewString(),
		AccountID:      actor.ID,
		ProblemID:      problemID,
		SelectedOption: selectedOption,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = l.db.Exec(`
		INSERT INTO vote (id, account_id, problem_id, selected_option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.AccountID, vote.ProblemID, vote.SelectedOption, vote.CreatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return vote, nil
}

// Tally counts votes per option for a problem. Options with no votes
// appear with a zero count; counts follow the problem's option order.
// Recomputed on every call.
func (l *VoteLedger) Tally(problemID string) (models.Tally, error) {
	options, err := l.problemOptions(problemID)
	if err != nil {
		return models.Tally{}, err
	}

	rows, err := l.db.Query(`
		SELECT selected_option, COUNT(*)
		FROM vote
		WHERE problem_id = $1
		GROUP BY selected_option
	`, problemID)
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(options))
	for rows.Next() {
		var option string
		var count int
		if err := rows.Scan(&option, &count); err != nil {
			return models.Tally{}, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[option] = count
	}
	if err := rows.Err(); err != nil {
		return models.Tally{}, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	tally := models.Tally{
		ProblemID: problemID,
		Counts:    make([]models.OptionCount, 0, len(options)),
	}
	for _, label := range options {
		tally.Counts = append(tally.Counts, models.OptionCount{Option: label, Count: counts[label]})
		tally.Total += counts[label]
	}

	return tally, nil
}

// problemOptions loads the option set, failing with ErrNotFound when the
// problem itself is absent.
func (l *VoteLedger) problemOptions(problemID string) ([]string, error) {
	var exists bool
	err := l.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM problem WHERE id = $1)
	`, problemID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query problem: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	return problemOptions(l.db, problemID)
}
