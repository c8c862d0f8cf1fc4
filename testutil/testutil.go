// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nanikiru/server/auth"
	"github.com/nanikiru/server/cliparse"
	"github.com/nanikiru/server/db"
	"github.com/nanikiru/server/middleware"
)

// TestPassword is the raw password used by CreateTestAccount.
const TestPassword = "test-password"

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database; the single-connection pool
// keeps the shared-cache memory database alive and serializes access
// the way a file database would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8090,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		SessionTTL:   time.Hour,
	}
}

// CreateTestAccount inserts an account with TestPassword as credential
func CreateTestAccount(t *testing.T, conn *sql.DB, username, email string, isHost bool) string {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	accountID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO account (id, username, email, password_hash, is_host, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, accountID, username, email, hash, isHost, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return accountID
}

// StartTestSession issues a session token for an account
func StartTestSession(t *testing.T, conn *sql.DB, accountID string) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO session (token, account_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token, accountID, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestProblem inserts a problem with the given ordered options and
// returns its ID
func CreateTestProblem(t *testing.T, conn *sql.DB, creatorID string, options []string) string {
	t.Helper()

	problemID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO problem (id, title, description, creator_id, created_at)
		VALUES ($1, 'Test Problem', 'Which tile do you discard?', $2, $3)
	`, problemID, creatorID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test problem: %v", err)
	}

	for i, label := range options {
		_, err := conn.Exec(`
			INSERT INTO problem_option (problem_id, position, label)
			VALUES ($1, $2, $3)
		`, problemID, i, label)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return problemID
}

// CastTestVote inserts a vote row directly
func CastTestVote(t *testing.T, conn *sql.DB, accountID, problemID, option string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, account_id, problem_id, selected_option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, accountID, problemID, option, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthRequest creates an HTTP test request carrying a session cookie
func AuthRequest(method, path string, body interface{}, token string) *http.Request {
	req := MakeRequest(method, path, body, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
