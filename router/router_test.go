// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avelwood/judgeboard/models"
	"github.com/avelwood/judgeboard/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "judgeboard API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Drive one request through an instrumented route first
	req := httptest.NewRequest("GET", "/rankings", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "judgeboard_http_requests_total") {
		t.Error("Expected request counter in metrics exposition")
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Test that routes respond (handler is invoked)
	// Note: Some routes return 404 when data doesn't exist, which is valid handler behavior
	testCases := []struct {
		method string
		path   string
	}{
		// Health and root
		{"GET", "/health"},
		{"GET", "/"},

		// Idea directory
		{"POST", "/ideas"},
		{"GET", "/ideas"},
		{"GET", "/ideas/test-id"},

		// Judge directory
		{"POST", "/judges"},
		{"GET", "/judges"},

		// Assignment management
		{"POST", "/ideas/test-id/assignments"},
		{"GET", "/ideas/test-id/assignments"},
		{"DELETE", "/ideas/test-id/assignments/test-aid"},
		{"POST", "/ideas/test-id/assignments/test-aid/lock"},
		{"POST", "/assignments/auto"},

		// Evaluation lifecycle
		{"POST", "/assignments/test-aid/open"},
		{"POST", "/assignments/test-aid/evaluation"},
		{"POST", "/assignments/test-aid/review"},

		// Leaderboard
		{"GET", "/rankings"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// Route should be matched (not 405 Method Not Allowed for these specific routes)
			// 400, 401, 404 are all valid responses depending on handler logic
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},   // Only GET is defined
		{"DELETE", "/judges"}, // Only GET and POST are defined
		{"PUT", "/rankings"},  // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	ideaID := testutil.SeedIdea(t, db, "Routed Idea", 5)

	mux := NewRouter(db, cfg)

	// Test that {id} parameter extracts correctly
	t.Run("idea ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ideas/"+ideaID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for existing idea, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("assignment list extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ideas/"+ideaID+"/assignments", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for assignment list, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/ideas"},
		{"POST", "/judges"},
		{"GET", "/judges"},
		{"POST", "/assignments/auto"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 for %s %s without admin key, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestRankingsThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	testutil.SeedIdea(t, db, "Ranked Idea", 5)

	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/rankings", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.RankingResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Rankings) != 1 {
		t.Errorf("Expected 1 ranked idea, got %d", len(resp.Rankings))
	}
}
