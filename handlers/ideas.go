// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/engine"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

type IdeaHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	engine *engine.Store
}

func NewIdeaHandler(db *sql.DB, cfg cliparse.Config, eng *engine.Store) *IdeaHandler {
	return &IdeaHandler{db: db, cfg: cfg, engine: eng}
}

// CreateIdea handles POST /ideas
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreateIdeaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	maxJudges := models.DefaultMaxJudges
	if req.MaxJudges != nil {
		maxJudges = *req.MaxJudges
	}

	var pdfURL *string
	if req.PDFURL != "" {
		pdfURL = &req.PDFURL
	}

	ideaID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO idea (id, title, track, max_judges, pdf_url, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ideaID, req.Title, req.Track, maxJudges, pdfURL, time.Now())

	if err != nil {
		slog.Error("failed to insert idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create idea")
		return
	}

	slog.Info("idea created", "idea_id", ideaID, "title", req.Title, "max_judges", maxJudges)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateIdeaResponse{
		IdeaID: ideaID,
	})
}

// ListIdeas handles GET /ideas
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, track, max_judges, pdf_url, submitted_at
		FROM idea
		ORDER BY submitted_at, id
	`)
	if err != nil {
		slog.Error("failed to query ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			slog.Error("failed to scan idea", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ideas)
}

// GetIdea handles GET /ideas/{id}
// Returns the idea with its aggregated evaluation stats.
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	ideaID := r.PathValue("id")
	if ideaID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idea id is required")
		return
	}

	row := h.db.QueryRow(`
		SELECT id, title, track, max_judges, pdf_url, submitted_at
		FROM idea
		WHERE id = $1
	`, ideaID)

	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stats, err := h.engine.IdeaStats(r.Context(), ideaID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, struct {
		Idea  models.Idea      `json:"idea"`
		Stats models.IdeaStats `json:"stats"`
	}{Idea: idea, Stats: stats})
}

type ideaScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row ideaScanner) (models.Idea, error) {
	var (
		idea   models.Idea
		pdfURL sql.NullString
	)
	err := row.Scan(&idea.ID, &idea.Title, &idea.Track, &idea.MaxJudges, &pdfURL, &idea.SubmittedAt)
	if err != nil {
		return models.Idea{}, err
	}
	if pdfURL.Valid {
		idea.PDFURL = &pdfURL.String
	}
	return idea, nil
}
