// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated with go-playground/validator
struct tags via models.Validate:

  - CreateIdeaRequest: title, track, max_judges, pdf_url
  - CreateJudgeRequest: name, capacity
  - CreateAssignmentsRequest: judge_ids
  - SubmitEvaluationRequest: ratings (exactly 10, each 1-10), decision

# Response Types

Types for JSON responses:

  - CreateIdeaResponse: idea_id
  - CreateJudgeResponse: judge_id, judge_token
  - AssignmentListResponse: idea_id, max_judges, assignments
  - SubmitEvaluationResponse: assignment_id, final_score, status
  - AutoAssignResponse: assigned_count, unresolved
  - RankingResponse: computed_at, rankings
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Idea: submitted entry with per-idea reviewer target (max_judges)
  - Judge: reviewer with optional capacity (nil = unlimited)
  - Assignment: one idea paired with one judge, with lifecycle state
  - IdeaStats: aggregated evaluation statistics for one idea
  - RankedIdea: leaderboard row with rank and tie-break inputs
  - AutoAssignResult: outcome of one auto-assign pass

# Constants

Status values:

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusReviewed   = "reviewed"
	StatusLocked     = "locked"

Decisions:

	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"

Limits:

	DefaultMaxJudges = 10
	RatingCount      = 10
*/
package models
