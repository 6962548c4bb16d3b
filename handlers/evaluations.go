// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/avelwood/judgeboard/auth"
	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/engine"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

type EvaluationHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	engine *engine.Store
}

func NewEvaluationHandler(db *sql.DB, cfg cliparse.Config, eng *engine.Store) *EvaluationHandler {
	return &EvaluationHandler{db: db, cfg: cfg, engine: eng}
}

// OpenAssignment handles POST /assignments/{aid}/open
// The acting judge starts reviewing: pending → in_progress.
func (h *EvaluationHandler) OpenAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := r.PathValue("aid")
	if assignmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "assignment id is required")
		return
	}

	judge, ok := currentJudge(w, r, h.db)
	if !ok {
		return
	}

	actor := engine.Actor{Role: engine.RoleJudge, ID: judge.ID}
	assignment, err := h.engine.OpenAssignment(r.Context(), actor, assignmentID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("assignment opened", "assignment_id", assignmentID, "judge_id", judge.ID)

	middleware.JSONResponse(w, http.StatusOK, assignment)
}

// SubmitEvaluation handles POST /assignments/{aid}/evaluation
// Attaches the ten-rating vector and decision, moving the assignment to
// submitted with its computed final score.
func (h *EvaluationHandler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	assignmentID := r.PathValue("aid")
	if assignmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "assignment id is required")
		return
	}

	judge, ok := currentJudge(w, r, h.db)
	if !ok {
		return
	}

	var req models.SubmitEvaluationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Audit trail only; never used for authentication.
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt)

	actor := engine.Actor{Role: engine.RoleJudge, ID: judge.ID}
	assignment, err := h.engine.SubmitEvaluation(r.Context(), actor, assignmentID, req.Ratings, req.Decision, ipHash)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("evaluation submitted",
		"assignment_id", assignmentID,
		"judge_id", judge.ID,
		"final_score", *assignment.FinalScore,
		"decision", req.Decision,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitEvaluationResponse{
		AssignmentID: assignment.ID,
		FinalScore:   *assignment.FinalScore,
		Status:       assignment.Status,
	})
}

// AcknowledgeReview handles POST /assignments/{aid}/review
// Admin acknowledges a submitted evaluation: submitted → reviewed.
func (h *EvaluationHandler) AcknowledgeReview(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	assignmentID := r.PathValue("aid")
	if assignmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "assignment id is required")
		return
	}

	assignment, err := h.engine.AcknowledgeReview(r.Context(), assignmentID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("review acknowledged", "assignment_id", assignmentID)

	middleware.JSONResponse(w, http.StatusOK, assignment)
}
