// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelwood/judgeboard/models"
	"github.com/avelwood/judgeboard/testutil"
)

func TestCreateJudge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewJudgeHandler(db, cfg)
	adminKey := testutil.TestAdminKey()

	tests := []struct {
		name           string
		adminKey       string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateJudgeResponse)
	}{
		{
			name:     "valid judge creation",
			adminKey: adminKey,
			requestBody: models.CreateJudgeRequest{
				Name:     "Dana Reviewer",
				Capacity: testutil.IntPtr(4),
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateJudgeResponse) {
				if resp.JudgeID == "" {
					t.Error("Expected non-empty judge_id")
				}
				if resp.JudgeToken == "" {
					t.Error("Expected non-empty judge_token")
				}

				// Verify the judge landed with its token and capacity
				var name string
				var capacity int
				err := db.QueryRow("SELECT name, capacity FROM judge WHERE token = $1", resp.JudgeToken).Scan(&name, &capacity)
				if err != nil {
					t.Fatalf("Failed to query judge: %v", err)
				}
				if name != "Dana Reviewer" {
					t.Errorf("Expected name 'Dana Reviewer', got '%s'", name)
				}
				if capacity != 4 {
					t.Errorf("Expected capacity 4, got %d", capacity)
				}
			},
		},
		{
			name:     "unlimited capacity",
			adminKey: adminKey,
			requestBody: models.CreateJudgeRequest{
				Name: "Tireless Judge",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			adminKey:       adminKey,
			requestBody:    models.CreateJudgeRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "zero capacity rejected",
			adminKey: adminKey,
			requestBody: models.CreateJudgeRequest{
				Name:     "Idle Judge",
				Capacity: testutil.IntPtr(0),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "invalid admin key",
			adminKey: "wrong-key",
			requestBody: models.CreateJudgeRequest{
				Name: "Impostor",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/judges", tt.requestBody, map[string]string{
				"X-Admin-Key": tt.adminKey,
			})
			w := httptest.NewRecorder()

			handler.CreateJudge(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateJudgeResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestListJudges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewJudgeHandler(db, cfg)

	ideaID := testutil.SeedIdea(t, db, "Idea One", 5)
	loaded, _ := testutil.SeedJudge(t, db, "Loaded Judge", testutil.IntPtr(3))
	idle, _ := testutil.SeedJudge(t, db, "Idle Judge", nil)
	testutil.SeedAssignment(t, db, ideaID, loaded, models.StatusPending)

	req := testutil.MakeRequest("GET", "/judges", nil, map[string]string{
		"X-Admin-Key": testutil.TestAdminKey(),
	})
	w := httptest.NewRecorder()
	handler.ListJudges(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var judges []models.JudgeWithLoad
	testutil.AssertJSON(t, w, &judges)
	if len(judges) != 2 {
		t.Fatalf("Expected 2 judges, got %d", len(judges))
	}

	byID := map[string]models.JudgeWithLoad{}
	for _, j := range judges {
		byID[j.ID] = j
	}

	if byID[loaded].ActiveAssignments != 1 {
		t.Errorf("Expected 1 active assignment for loaded judge, got %d", byID[loaded].ActiveAssignments)
	}
	if byID[loaded].Capacity == nil || *byID[loaded].Capacity != 3 {
		t.Error("Expected capacity 3 for loaded judge")
	}
	if byID[idle].ActiveAssignments != 0 {
		t.Errorf("Expected 0 active assignments for idle judge, got %d", byID[idle].ActiveAssignments)
	}
	if byID[idle].Capacity != nil {
		t.Error("Expected nil capacity for unlimited judge")
	}
}

func TestListJudgesRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewJudgeHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/judges", nil, nil)
	w := httptest.NewRecorder()
	handler.ListJudges(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
