package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/nanikiru/server/auth"
	"github.com/nanikiru/server/db"
)

var storeDBCounter atomic.Int64

// setupStoreDB creates an in-memory database for testing
func setupStoreDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storedb%d?mode=memory&cache=shared", storeDBCounter.Add(1))
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

func TestAccountCreateAndAuthenticate(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)

	created, err := accounts.Create("noriko", "noriko@example.com", "s3cret-pw", false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Error("Expected non-empty account id")
	}
	if created.PasswordHash == "s3cret-pw" {
		t.Error("Raw password must not be stored")
	}
	if created.IsHost {
		t.Error("Expected is_host false")
	}

	// A fresh registration must be verifiable with the same credentials
	authed, err := accounts.Authenticate("noriko@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if authed.ID != created.ID {
		t.Errorf("Expected account %s, got %s", created.ID, authed.ID)
	}
}

func TestAccountCreateConflict(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)

	if _, err := accounts.Create("kenta", "kenta@example.com", "password1", true); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{name: "duplicate username", username: "kenta", email: "other@example.com"},
		{name: "duplicate email", username: "other", email: "kenta@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounts.Create(tt.username, tt.email, "password2", false)
			if !errors.Is(err, ErrConflict) {
				t.Errorf("Expected ErrConflict, got: %v", err)
			}
		})
	}

	// No partial rows from the failed attempts
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM account").Scan(&count); err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 account, got %d", count)
	}
}

func TestAuthenticateUniformFailure(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)

	if _, err := accounts.Create("mio", "mio@example.com", "correct-pw", false); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Wrong password and unknown email must fail with the same error kind
	_, wrongPwErr := accounts.Authenticate("mio@example.com", "wrong-pw")
	_, unknownErr := accounts.Authenticate("nobody@example.com", "correct-pw")

	if !errors.Is(wrongPwErr, auth.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got: %v", wrongPwErr)
	}
	if !errors.Is(unknownErr, auth.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got: %v", unknownErr)
	}
	if wrongPwErr.Error() != unknownErr.Error() {
		t.Errorf("Failure kinds must be indistinguishable: %q vs %q", wrongPwErr, unknownErr)
	}
}

func TestAccountByID(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)

	created, err := accounts.Create("rui", "rui@example.com", "password1", true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := accounts.ByID(created.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if found.Username != "rui" || !found.IsHost {
		t.Errorf("Unexpected account: %+v", found)
	}

	if _, err := accounts.ByID("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
