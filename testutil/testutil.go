// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/avelwood/judgeboard/auth"
	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/db"
)

// SetupTestDB creates a fresh SQLite database in a per-test temp directory
// with the full schema. The database is removed with the temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "judgeboard_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  "judgeboard_test.db",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// TestAdminKey returns the admin key matching GetTestConfig's salt.
func TestAdminKey() string {
	return auth.GenerateAdminKey(GetTestConfig().AdminKeySalt)
}

// SeedIdea inserts an idea and returns its ID
func SeedIdea(t *testing.T, conn *sql.DB, title string, maxJudges int) string {
	t.Helper()

	ideaID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO idea (id, title, track, max_judges, submitted_at)
		VALUES ($1, $2, 'general', $3, $4)
	`, ideaID, title, maxJudges, time.Now())
	if err != nil {
		t.Fatalf("Failed to seed idea: %v", err)
	}

	return ideaID
}

// SeedJudge inserts a judge and returns its ID and token.
// capacity nil means unlimited.
func SeedJudge(t *testing.T, conn *sql.DB, name string, capacity *int) (judgeID, token string) {
	t.Helper()

	judgeID = uuid.NewString()
	token, err := auth.GenerateJudgeToken()
	if err != nil {
		t.Fatalf("Failed to generate judge token: %v", err)
	}

	var capValue any
	if capacity != nil {
		capValue = *capacity
	}
	_, err = conn.Exec(`
		INSERT INTO judge (id, name, capacity, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, judgeID, name, capValue, token, time.Now())
	if err != nil {
		t.Fatalf("Failed to seed judge: %v", err)
	}

	return judgeID, token
}

// SeedAssignment inserts an assignment in the given status and returns its ID
func SeedAssignment(t *testing.T, conn *sql.DB, ideaID, judgeID, status string) string {
	t.Helper()

	assignmentID := uuid.NewString()
	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO assignment (id, idea_id, judge_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, assignmentID, ideaID, judgeID, status, now, now)
	if err != nil {
		t.Fatalf("Failed to seed assignment: %v", err)
	}

	return assignmentID
}

// IntPtr is a shorthand for capacity arguments in tests
func IntPtr(v int) *int { return &v }

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
