// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Judgeboard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Idea directory (admin writes require X-Admin-Key):

	POST /ideas      - Create idea
	GET  /ideas      - List ideas
	GET  /ideas/{id} - Idea with aggregated stats

Judge roster (admin, requires X-Admin-Key):

	POST /judges - Create judge (returns judge token)
	GET  /judges - List judges with current load

Assignment management (admin, requires X-Admin-Key):

	POST   /ideas/{id}/assignments            - Assign judges to an idea
	GET    /ideas/{id}/assignments            - List an idea's assignments
	DELETE /ideas/{id}/assignments/{aid}      - Delete (unlocked only)
	POST   /ideas/{id}/assignments/{aid}/lock - Lock (idempotent)
	POST   /assignments/auto                  - Fill reviewer gaps

Evaluation workflow (judge, requires X-Judge-Token):

	POST /assignments/{aid}/open       - Start reviewing
	POST /assignments/{aid}/evaluation - Submit ratings and decision

Admin acknowledgement:

	POST /assignments/{aid}/review - Mark submitted evaluation reviewed

Leaderboard (public):

	GET /rankings

# Handler Initialization

The router creates one engine.Store shared by all handlers, so every
mutation goes through the same store mutex:

	eng := engine.NewStore(db)
	assignmentHandler := handlers.NewAssignmentHandler(cfg, eng)

Handlers that query directly also receive the database connection.
*/
package router
