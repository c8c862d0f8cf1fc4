// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nanikiru/server/middleware"
	"github.com/nanikiru/server/models"
	"github.com/nanikiru/server/store"
	"github.com/nanikiru/server/testutil"
)

// TestConcurrentVotesOneAccount verifies that when one account hammers the
// vote endpoint concurrently, exactly one vote lands and every other attempt
// reports already_voted. The unique (account_id, problem_id) constraint is
// the arbiter, not a check in application code.
func TestConcurrentVotesOneAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	voteHandler := NewVoteHandler(db, cfg)
	sessions := store.NewSessionStore(db, cfg.SessionTTL)
	gated := middleware.RequireCapability(sessions, middleware.CapAuthenticated, voteHandler.Cast)

	hostID := testutil.CreateTestAccount(t, db, "host", "host@example.com", true)
	problemID := testutil.CreateTestProblem(t, db, hostID, []string{"A", "B", "C"})
	voterID := testutil.CreateTestAccount(t, db, "voter", "voter@example.com", false)
	voterToken := testutil.StartTestSession(t, db, voterID)

	numAttempts := 10
	options := []string{"A", "B", "C"}

	var recordedCount atomic.Int32
	var alreadyVotedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			req := testutil.AuthRequest("POST", "/problems/"+problemID+"/votes", models.CastVoteRequest{
				SelectedOption: options[attempt%len(options)],
			}, voterToken)
			req.SetPathValue("id", problemID)
			w := httptest.NewRecorder()

			gated(w, req)

			switch w.Code {
			case http.StatusCreated:
				recordedCount.Add(1)
			case http.StatusOK:
				var resp models.CastVoteResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err == nil && resp.Status == models.VoteAlreadyCast {
					alreadyVotedCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	if recordedCount.Load() != 1 {
		t.Errorf("Expected exactly 1 recorded vote, got %d", recordedCount.Load())
	}
	if int(alreadyVotedCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d already_voted responses, got %d", numAttempts-1, alreadyVotedCount.Load())
	}

	// Exactly one vote row for this (account, problem) pair
	var voteCount int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE account_id = $1 AND problem_id = $2
	`, voterID, problemID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != 1 {
		t.Errorf("Expected 1 vote in database, got %d", voteCount)
	}
}

// TestConcurrentVotesManyAccounts verifies that distinct voters casting at
// the same time don't trample each other.
func TestConcurrentVotesManyAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	voteHandler := NewVoteHandler(db, cfg)
	sessions := store.NewSessionStore(db, cfg.SessionTTL)
	gated := middleware.RequireCapability(sessions, middleware.CapAuthenticated, voteHandler.Cast)

	hostID := testutil.CreateTestAccount(t, db, "host", "host@example.com", true)
	problemID := testutil.CreateTestProblem(t, db, hostID, []string{"A", "B"})

	numVoters := 10
	voterTokens := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		name := "voter" + string(rune('a'+i))
		voterID := testutil.CreateTestAccount(t, db, name, name+"@example.com", false)
		voterTokens[i] = testutil.StartTestSession(t, db, voterID)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			option := "A"
			if voterIdx%2 == 1 {
				option = "B"
			}
			req := testutil.AuthRequest("POST", "/problems/"+problemID+"/votes", models.CastVoteRequest{
				SelectedOption: option,
			}, voterTokens[voterIdx])
			req.SetPathValue("id", problemID)
			w := httptest.NewRecorder()

			gated(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var voteCount int
	err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE problem_id = $1", problemID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != numVoters {
		t.Errorf("Expected %d votes in database, got %d", numVoters, voteCount)
	}

	var uniqueVoters int
	err = db.QueryRow("SELECT COUNT(DISTINCT account_id) FROM vote WHERE problem_id = $1", problemID).Scan(&uniqueVoters)
	if err != nil {
		t.Fatalf("Failed to count distinct voters: %v", err)
	}
	if uniqueVoters != numVoters {
		t.Errorf("Expected %d distinct voters, got %d (possible duplicates)", numVoters, uniqueVoters)
	}
}

// TestConcurrentRegistrations verifies that when several goroutines race to
// register the same username, exactly one account is created.
func TestConcurrentRegistrations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	accountHandler := NewAccountHandler(db, cfg)

	contestedUsername := "race_user"
	numAttempts := 5

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/register", models.RegisterRequest{
				Username:        contestedUsername,
				Email:           "race" + string(rune('0'+attempt)) + "@example.com",
				Password:        "hunter42",
				ConfirmPassword: "hunter42",
			}, nil)
			w := httptest.NewRecorder()

			accountHandler.Register(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful registration, got %d", successCount.Load())
	}

	var accountCount int
	err := db.QueryRow("SELECT COUNT(*) FROM account WHERE username = $1", contestedUsername).Scan(&accountCount)
	if err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if accountCount != 1 {
		t.Errorf("Expected 1 account in database, got %d", accountCount)
	}
}
