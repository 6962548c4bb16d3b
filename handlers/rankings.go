// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avelwood/judgeboard/engine"
	"github.com/avelwood/judgeboard/middleware"
	"github.com/avelwood/judgeboard/models"
)

// RankingHandler serves the public leaderboard. It needs no config or
// direct database handle, only the engine.
type RankingHandler struct {
	engine *engine.Store
}

func NewRankingHandler(eng *engine.Store) *RankingHandler {
	return &RankingHandler{engine: eng}
}

// GetRankings handles GET /rankings
// Returns the full leaderboard in a stable, deterministic order.
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.engine.Rank(r.Context())
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	slog.Info("rankings computed", "ideas", len(rankings))

	middleware.JSONResponse(w, http.StatusOK, models.RankingResponse{
		ComputedAt: time.Now(),
		Rankings:   rankings,
	})
}
