// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Judgeboard API.

# Handler Types

Each handler is a struct with database, config, and engine dependencies:

  - IdeaHandler: Idea directory (create, list, get with stats)
  - JudgeHandler: Judge roster (create with token, list with load)
  - AssignmentHandler: Assignment management (create, list, delete, lock,
    auto-assign)
  - EvaluationHandler: Judge workflow (open, submit evaluation) and admin
    acknowledgement
  - RankingHandler: Leaderboard retrieval

Handlers are created via constructor functions:

	eng := engine.NewStore(db)
	assignmentHandler := handlers.NewAssignmentHandler(cfg, eng)

# Assignment Lifecycle

Assignments progress through: pending → in_progress → submitted → reviewed,
with locked reachable from any non-terminal state.

	POST /ideas/{id}/assignments          → CreateAssignments (admin)
	POST /assignments/auto                → AutoAssign (admin)
	POST /assignments/{aid}/open          → OpenAssignment (judge)
	POST /assignments/{aid}/evaluation    → SubmitEvaluation (judge)
	POST /assignments/{aid}/review        → AcknowledgeReview (admin)
	POST /ideas/{id}/assignments/{aid}/lock → LockAssignment (admin, idempotent)

Admin operations require the X-Admin-Key header; judge operations require
the X-Judge-Token header.

# Error Mapping

Engine failures are translated uniformly by middleware.EngineError:
validation → 400, not found → 404, conflict/capacity → 409.

# Ranking

The leaderboard is served from GET /rankings: descending average score
(unscored ideas last), then completed count, then latest activity, then
ascending idea id.
*/
package handlers
