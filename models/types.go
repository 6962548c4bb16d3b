// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Assignment status constants
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusReviewed   = "reviewed"
	StatusLocked     = "locked"
)

// Evaluation decision constants
const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// DefaultMaxJudges is the reviewer target for ideas that don't set their own.
const DefaultMaxJudges = 10

// RatingCount is the fixed length of an evaluation's rating vector.
const RatingCount = 10

// Request types

type CreateIdeaRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Track     string `json:"track" validate:"max=100"`
	MaxJudges *int   `json:"max_judges" validate:"omitempty,min=1,max=100"`
	PDFURL    string `json:"pdf_url" validate:"omitempty,max=2000"`
}

type CreateJudgeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=1"`
}

type CreateAssignmentsRequest struct {
	JudgeIDs []string `json:"judge_ids" validate:"required,min=1,unique,dive,required"`
}

type SubmitEvaluationRequest struct {
	Ratings  []int  `json:"ratings" validate:"required,len=10,dive,min=1,max=10"`
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

// Response types

type CreateIdeaResponse struct {
	IdeaID string `json:"idea_id"`
}

type CreateJudgeResponse struct {
	JudgeID    string `json:"judge_id"`
	JudgeToken string `json:"judge_token"`
}

type AssignmentListResponse struct {
	IdeaID      string       `json:"idea_id"`
	MaxJudges   int          `json:"max_judges"`
	Assignments []Assignment `json:"assignments"`
}

type SubmitEvaluationResponse struct {
	AssignmentID string `json:"assignment_id"`
	FinalScore   int    `json:"final_score"`
	Status       string `json:"status"`
}

type AutoAssignResponse struct {
	AssignedCount int      `json:"assigned_count"`
	Unresolved    []string `json:"unresolved"`
}

type RankingResponse struct {
	ComputedAt time.Time    `json:"computed_at"`
	Rankings   []RankedIdea `json:"rankings"`
}

// Domain types

type Idea struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Track       string    `json:"track"`
	MaxJudges   int       `json:"max_judges"`
	PDFURL      *string   `json:"pdf_url,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Judge struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  *int      `json:"capacity,omitempty"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// JudgeWithLoad pairs a judge with its current assignment count for roster views.
type JudgeWithLoad struct {
	Judge
	ActiveAssignments int `json:"active_assignments"`
}

type Assignment struct {
	ID         string     `json:"id"`
	IdeaID     string     `json:"idea_id"`
	JudgeID    string     `json:"judge_id"`
	Status     string     `json:"status"`
	Ratings    []int      `json:"ratings,omitempty"`
	FinalScore *int       `json:"final_score,omitempty"`
	Decision   *string    `json:"decision,omitempty"`
	LockedAt   *time.Time `json:"locked_at,omitempty"`
	DecisionAt *time.Time `json:"decision_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IdeaStats aggregates one idea's evaluations.
// AverageScore is nil until at least one evaluation carries a final score.
type IdeaStats struct {
	IdeaID           string     `json:"idea_id"`
	AverageScore     *float64   `json:"average_score"`
	CompletedCount   int        `json:"completed_count"`
	TotalAssignments int        `json:"total_assignments"`
	LatestActivity   *time.Time `json:"latest_activity,omitempty"`
}

type RankedIdea struct {
	Rank             int        `json:"rank"`
	RankLabel        string     `json:"rank_label"` // "1st", "2nd", ...
	IdeaID           string     `json:"idea_id"`
	Title            string     `json:"title"`
	Track            string     `json:"track"`
	AverageScore     *float64   `json:"average_score"`
	CompletedCount   int        `json:"completed_count"`
	TotalAssignments int        `json:"total_assignments"`
	LatestActivity   *time.Time `json:"latest_activity,omitempty"`
	Judges           []string   `json:"judges"`
}

type AutoAssignResult struct {
	AssignedCount int      `json:"assigned_count"`
	Unresolved    []string `json:"unresolved"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
