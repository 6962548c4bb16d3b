// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/engine"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

type AssignmentHandler struct {
	cfg    cliparse.Config
	engine *engine.Store
}

func NewAssignmentHandler(cfg cliparse.Config, eng *engine.Store) *AssignmentHandler {
	return &AssignmentHandler{cfg: cfg, engine: eng}
}

// CreateAssignments handles POST /ideas/{id}/assignments
// Pairs the idea with each listed judge; the batch is all-or-nothing.
func (h *AssignmentHandler) CreateAssignments(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	ideaID := r.PathValue("id")
	if ideaID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idea id is required")
		return
	}

	var req models.CreateAssignmentsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	assignments, maxJudges, err := h.engine.CreateAssignments(r.Context(), ideaID, req.JudgeIDs)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("assignments created", "idea_id", ideaID, "count", len(req.JudgeIDs))

	middleware.JSONResponse(w, http.StatusCreated, models.AssignmentListResponse{
		IdeaID:      ideaID,
		MaxJudges:   maxJudges,
		Assignments: assignments,
	})
}

// ListAssignments handles GET /ideas/{id}/assignments
func (h *AssignmentHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ideaID := r.PathValue("id")
	if ideaID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idea id is required")
		return
	}

	assignments, maxJudges, err := h.engine.ListAssignments(r.Context(), ideaID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AssignmentListResponse{
		IdeaID:      ideaID,
		MaxJudges:   maxJudges,
		Assignments: assignments,
	})
}

// DeleteAssignment handles DELETE /ideas/{id}/assignments/{aid}
// Locked assignments cannot be deleted.
func (h *AssignmentHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	ideaID := r.PathValue("id")
	assignmentID := r.PathValue("aid")
	if ideaID == "" || assignmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idea id and assignment id are required")
		return
	}

	if err := h.engine.DeleteAssignment(r.Context(), ideaID, assignmentID); err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("assignment deleted", "idea_id", ideaID, "assignment_id", assignmentID)

	w.WriteHeader(http.StatusNoContent)
}

// LockAssignment handles POST /ideas/{id}/assignments/{aid}/lock
// Locking is idempotent; a locked record stays frozen forever.
func (h *AssignmentHandler) LockAssignment(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	ideaID := r.PathValue("id")
	assignmentID := r.PathValue("aid")
	if ideaID == "" || assignmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idea id and assignment id are required")
		return
	}

	if err := h.engine.LockAssignment(r.Context(), ideaID, assignmentID); err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("assignment locked", "idea_id", ideaID, "assignment_id", assignmentID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": models.StatusLocked})
}

// AutoAssign handles POST /assignments/auto
// Fills reviewer gaps across all ideas; never fails wholesale.
func (h *AssignmentHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	result, err := h.engine.AutoAssign(r.Context())
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("auto-assign completed",
		"assigned_count", result.AssignedCount,
		"unresolved", len(result.Unresolved),
	)

	middleware.JSONResponse(w, http.StatusOK, models.AutoAssignResponse{
		AssignedCount: result.AssignedCount,
		Unresolved:    result.Unresolved,
	})
}
