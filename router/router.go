// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelwood/judgeboard/cliparse"
	"github.com/avelwood/judgeboard/engine"
	"github.com/avelwood/judgeboard/handlers"
	"github.com/avelwood/judgeboard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared engine instance; its mutex serializes mutations across handlers.
	eng := engine.NewStore(db)

	// Initialize handlers
	ideaHandler := handlers.NewIdeaHandler(db, cfg, eng)
	judgeHandler := handlers.NewJudgeHandler(db, cfg)
	assignmentHandler := handlers.NewAssignmentHandler(cfg, eng)
	evaluationHandler := handlers.NewEvaluationHandler(db, cfg, eng)
	rankingHandler := handlers.NewRankingHandler(eng)

	metrics := middleware.NewRequestMetrics()
	handle := func(pattern, route string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(metrics.Wrap(route, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Idea directory (admin writes, public reads)
	handle("POST /ideas", "/ideas", ideaHandler.CreateIdea)
	handle("GET /ideas", "/ideas", ideaHandler.ListIdeas)
	handle("GET /ideas/{id}", "/ideas/{id}", ideaHandler.GetIdea)

	// Judge directory (admin)
	handle("POST /judges", "/judges", judgeHandler.CreateJudge)
	handle("GET /judges", "/judges", judgeHandler.ListJudges)

	// Assignment management (admin)
	handle("POST /ideas/{id}/assignments", "/ideas/{id}/assignments", assignmentHandler.CreateAssignments)
	handle("GET /ideas/{id}/assignments", "/ideas/{id}/assignments", assignmentHandler.ListAssignments)
	handle("DELETE /ideas/{id}/assignments/{aid}", "/ideas/{id}/assignments/{aid}", assignmentHandler.DeleteAssignment)
	handle("POST /ideas/{id}/assignments/{aid}/lock", "/ideas/{id}/assignments/{aid}/lock", assignmentHandler.LockAssignment)
	handle("POST /assignments/auto", "/assignments/auto", assignmentHandler.AutoAssign)

	// Evaluation lifecycle (judge ops, admin acknowledge)
	handle("POST /assignments/{aid}/open", "/assignments/{aid}/open", evaluationHandler.OpenAssignment)
	handle("POST /assignments/{aid}/evaluation", "/assignments/{aid}/evaluation", evaluationHandler.SubmitEvaluation)
	handle("POST /assignments/{aid}/review", "/assignments/{aid}/review", evaluationHandler.AcknowledgeReview)

	// Leaderboard (public)
	handle("GET /rankings", "/rankings", rankingHandler.GetRankings)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("judgeboard API v1"))
	})

	return mux
}
