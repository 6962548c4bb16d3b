// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelwood/judgeboard/auth"
	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

type JudgeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewJudgeHandler(db *sql.DB, cfg cliparse.Config) *JudgeHandler {
	return &JudgeHandler{db: db, cfg: cfg}
}

// CreateJudge handles POST /judges
// Returns the judge id and a one-time-visible judge token.
func (h *JudgeHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreateJudgeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := auth.GenerateJudgeToken()
	if err != nil {
		slog.Error("failed to generate judge token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create judge")
		return
	}

	var capacity any
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	judgeID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO judge (id, name, capacity, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, judgeID, req.Name, capacity, token, time.Now())

	if err != nil {
		slog.Error("failed to insert judge", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create judge")
		return
	}

	slog.Info("judge created", "judge_id", judgeID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateJudgeResponse{
		JudgeID:    judgeID,
		JudgeToken: token,
	})
}

// ListJudges handles GET /judges
// Returns the roster with each judge's current assignment load.
func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	rows, err := h.db.Query(`
		SELECT j.id, j.name, j.capacity, j.created_at, COUNT(a.id)
		FROM judge j
		LEFT JOIN assignment a ON a.judge_id = j.id
		GROUP BY j.id, j.name, j.capacity, j.created_at
		ORDER BY j.id
	`)
	if err != nil {
		slog.Error("failed to query judges", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	judges := []models.JudgeWithLoad{}
	for rows.Next() {
		var (
			j        models.JudgeWithLoad
			capacity sql.NullInt64
		)
		if err := rows.Scan(&j.ID, &j.Name, &capacity, &j.CreatedAt, &j.ActiveAssignments); err != nil {
			slog.Error("failed to scan judge", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			j.Capacity = &c
		}
		judges = append(judges, j)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read judges", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, judges)
}
