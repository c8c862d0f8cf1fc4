// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nanikiru/server/models"
)

// ProblemCatalog persists poll definitions. Problems are immutable after
// creation; there is no edit or delete flow.
type ProblemCatalog struct {
	db *sql.DB
}

func NewProblemCatalog(database *sql.DB) *ProblemCatalog {
	return &ProblemCatalog{db: database}
}

// Create stores a new problem with its ordered option set. Only host
// accounts may create problems; everyone else gets ErrForbidden. The
// problem row and its option rows commit in one transaction.
func (c *ProblemCatalog) Create(actor models.Account, title, description, optionsRaw string, imageURL *string) (models.Problem, error) {
	if !actor.IsHost {
		return models.Problem{}, ErrForbidden
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	options := models.ParseOptions(optionsRaw)

	switch {
	case title == "":
		return models.Problem{}, fmt.Errorf("%w: title is required", ErrValidation)
	case utf8.RuneCountInString(title) > models.TitleMaxLen:
		return models.Problem{}, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, models.TitleMaxLen)
	case description == "":
		return models.Problem{}, fmt.Errorf("%w: description is required", ErrValidation)
	case len(options) == 0:
		return models.Problem{}, fmt.Errorf("%w: at least one option is required", ErrValidation)
	}

	problem := models.Problem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Options:     options,
		CreatorID:   &actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := c.db.Begin()
	if err != nil {
		return models.Problem{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO problem (id, title, description, image_url, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, problem.ID, problem.Title, problem.Description, problem.ImageURL, problem.CreatorID, problem.CreatedAt)

	if err != nil {
		return models.Problem{}, fmt.Errorf("failed to insert problem: %w", err)
	}

	for i, label := range options {
		_, err = tx.Exec(`
			INSERT INTO problem_option (problem_id, position, label)
			VALUES ($1, $2, $3)
		`, problem.ID, i, label)

		if err != nil {
			return models.Problem{}, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Problem{}, fmt.Errorf("failed to commit problem: %w", err)
	}

	return problem, nil
}

// List returns every problem, oldest first, with options in position
// order. No filtering or pagination.
func (c *ProblemCatalog) List() ([]models.Problem, error) {
	rows, err := c.db.Query(`
		SELECT id, title, description, image_url, creator_id, created_at
		FROM problem
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}
	defer rows.Close()

	problems := []models.Problem{}
	index := make(map[string]int)
	for rows.Next() {
		var p models.Problem
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatorID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		p.Options = []string{}
		index[p.ID] = len(problems)
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate problems: %w", err)
	}

	optRows, err := c.db.Query(`
		SELECT problem_id, label
		FROM problem_option
		ORDER BY problem_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var problemID, label string
		if err := optRows.Scan(&problemID, &label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[problemID]; ok {
			problems[i].Options = append(problems[i].Options, label)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return problems, nil
}

// ByID resolves a problem id. Returns ErrNotFound for unknown ids.
func (c *ProblemCatalog) ByID(id string) (models.Problem, error) {
	var p models.Problem
	err := c.db.QueryRow(`
		SELECT id, title, description, image_url, creator_id, created_at
		FROM problem
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatorID, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Problem{}, ErrNotFound
	}
	if err != nil {
		return models.Problem{}, fmt.Errorf("failed to query problem: %w", err)
	}

	p.Options, err = problemOptions(c.db, id)
	if err != nil {
		return models.Problem{}, err
	}

	return p, nil
}

// problemOptions loads a problem's option labels in position order.
func problemOptions(database *sql.DB, problemID string) ([]string, error) {
	rows, err := database.Query(`
		SELECT label
		FROM problem_option
		WHERE problem_id = $1
		ORDER BY position
	`, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return options, nil
}
