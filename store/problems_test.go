package store

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nanikiru/server/models"
)

func TestProblemCreate(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)
	catalog := NewProblemCatalog(conn)

	host, err := accounts.Create("host", "host@example.com", "password1", true)
	if err != nil {
		t.Fatalf("Create account failed: %v", err)
	}

	problem, err := catalog.Create(host, "East 2, seat south", "11m injured hand, dora 5p", "A, B, ,A", nil)
	if err != nil {
		t.Fatalf("Create problem failed: %v", err)
	}

	// Trimmed, empties dropped, duplicate collapsed
	if !reflect.DeepEqual(problem.Options, []string{"A", "B"}) {
		t.Errorf("Expected options [A B], got %v", problem.Options)
	}
	if problem.CreatorID == nil || *problem.CreatorID != host.ID {
		t.Error("Expected creator to be the host account")
	}

	// Options persisted one row per option, in order
	rows, err := conn.Query(`SELECT position, label FROM problem_option WHERE problem_id = $1 ORDER BY position`, problem.ID)
	if err != nil {
		t.Fatalf("Failed to query options: %v", err)
	}
	defer rows.Close()

	var stored []string
	for rows.Next() {
		var position int
		var label string
		if err := rows.Scan(&position, &label); err != nil {
			t.Fatalf("Failed to scan option: %v", err)
		}
		stored = append(stored, label)
	}
	if !reflect.DeepEqual(stored, []string{"A", "B"}) {
		t.Errorf("Expected stored options [A B], got %v", stored)
	}
}

func TestProblemCreateForbidden(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)
	catalog := NewProblemCatalog(conn)

	voter, err := accounts.Create("voter", "voter@example.com", "password1", false)
	if err != nil {
		t.Fatalf("Create account failed: %v", err)
	}

	_, err = catalog.Create(voter, "Title", "Description", "A,B", nil)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got: %v", err)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM problem").Scan(&count); err != nil {
		t.Fatalf("Failed to count problems: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no problem rows, got %d", count)
	}
}

func TestProblemCreateValidation(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)
	catalog := NewProblemCatalog(conn)

	host, err := accounts.Create("host", "host@example.com", "password1", true)
	if err != nil {
		t.Fatalf("Create account failed: %v", err)
	}

	tests := []struct {
		name        string
		title       string
		description string
		options     string
	}{
		{name: "empty title", title: "", description: "desc", options: "A,B"},
		{name: "whitespace title", title: "   ", description: "desc", options: "A,B"},
		{name: "title too long", title: strings.Repeat("x", models.TitleMaxLen+1), description: "desc", options: "A,B"},
		{name: "multibyte title too long", title: strings.Repeat("東", models.TitleMaxLen+1), description: "desc", options: "A,B"},
		{name: "empty description", title: "Title", description: "  ", options: "A,B"},
		{name: "no options", title: "Title", description: "desc", options: " , ,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Create(host, tt.title, tt.description, tt.options, nil)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got: %v", err)
			}
		})
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM problem").Scan(&count); err != nil {
		t.Fatalf("Failed to count problems: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no problem rows, got %d", count)
	}

	// The limit counts characters: a max-length multibyte title is valid
	// even though it is three bytes per character
	if _, err := catalog.Create(host, strings.Repeat("東", models.TitleMaxLen), "desc", "A,B", nil); err != nil {
		t.Errorf("Expected max-length multibyte title to pass, got: %v", err)
	}
}

func TestProblemListAndByID(t *testing.T) {
	conn := setupStoreDB(t)
	defer conn.Close()

	accounts := NewAccountStore(conn)
	catalog := NewProblemCatalog(conn)

	host, err := accounts.Create("host", "host@example.com", "password1", true)
	if err != nil {
		t.Fatalf("Create account failed: %v", err)
	}

	first, err := catalog.Create(host, "First", "desc one", "1m,2p,3s", nil)
	if err != nil {
		t.Fatalf("Create problem failed: %v", err)
	}
	second, err := catalog.Create(host, "Second", "desc two", "chii,pon", nil)
	if err != nil {
		t.Fatalf("Create problem failed: %v", err)
	}

	problems, err := catalog.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("Expected 2 problems, got %d", len(problems))
	}
	if problems[0].ID != first.ID || problems[1].ID != second.ID {
		t.Error("Expected problems ordered oldest first")
	}
	if !reflect.DeepEqual(problems[0].Options, []string{"1m", "2p", "3s"}) {
		t.Errorf("Expected options in position order, got %v", problems[0].Options)
	}

	found, err := catalog.ByID(second.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if !reflect.DeepEqual(found.Options, []string{"chii", "pon"}) {
		t.Errorf("Expected options [chii pon], got %v", found.Options)
	}

	if _, err := catalog.ByID("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
