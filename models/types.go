// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Validation limits, matching the registration and problem forms
const (
	UsernameMinLen = 2
	UsernameMaxLen = 20
	PasswordMinLen = 6
	TitleMaxLen    = 100
)

// Vote outcome status values
const (
	VoteRecorded    = "recorded"
	VoteAlreadyCast = "already_voted"
)

// Request types

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	IsHost          bool   `json:"is_host"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Next is an optional post-login redirect target (relative path only)
	Next string `json:"next,omitempty"`
}

type CreateProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Options is the raw comma-separated option list as entered by the host
	Options  string  `json:"options"`
	ImageURL *string `json:"image_url,omitempty"`
}

type CastVoteRequest struct {
	SelectedOption string `json:"selected_option"`
}

// Response types

type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}

type LoginResponse struct {
	Account  Account `json:"account"`
	Redirect string  `json:"redirect"`
}

type CreateProblemResponse struct {
	ProblemID string `json:"problem_id"`
}

type CastVoteResponse struct {
	Status   string `json:"status"`
	VoteID   string `json:"vote_id,omitempty"`
	Redirect string `json:"redirect"`
	Message  string `json:"message,omitempty"`
}

// Domain types

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsHost       bool      `json:"is_host"`
	CreatedAt    time.Time `json:"created_at"`
}

type Problem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Options     []string  `json:"options"`
	CreatorID   *string   `json:"creator_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Vote struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"-"` // Never expose in JSON
	ProblemID      string    `json:"problem_id"`
	SelectedOption string    `json:"selected_option"`
	CreatedAt      time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"-"` // Never expose in JSON
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Tally types

type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

type Tally struct {
	ProblemID string        `json:"problem_id"`
	Counts    []OptionCount `json:"counts"` // Problem option order, zero counts included
	Total     int           `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
