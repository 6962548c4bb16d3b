// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/avelwood/judgeboard/auth"
	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

// requireAdmin validates the X-Admin-Key header. It writes the error
// response itself and reports whether the caller may proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// currentJudge resolves the X-Judge-Token header to a judge row. It writes
// the error response itself; ok is false when the caller may not proceed.
func currentJudge(w http.ResponseWriter, r *http.Request, db *sql.DB) (judge models.Judge, ok bool) {
	token := r.Header.Get("X-Judge-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Judge-Token header required")
		return models.Judge{}, false
	}

	var capacity sql.NullInt64
	err := db.QueryRow(`
		SELECT id, name, capacity, created_at FROM judge WHERE token = $1
	`, token).Scan(&judge.ID, &judge.Name, &capacity, &judge.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid judge token")
		return models.Judge{}, false
	}
	if err != nil {
		slog.Error("failed to resolve judge token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Judge{}, false
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		judge.Capacity = &c
	}
	return judge, true
}
