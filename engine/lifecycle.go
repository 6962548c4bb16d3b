// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelwood/judgeboard/models"
)

// Lifecycle: pending → in_progress → submitted → reviewed, with locked
// reachable from any non-terminal state. Reviewed and locked are terminal.
//
//	pending     --judge opens-->       in_progress
//	in_progress --judge submits-->     submitted
//	submitted   --admin acknowledges-> reviewed
//	any non-terminal --admin locks-->  locked

// OpenAssignment moves a pending assignment to in_progress. Judge-scoped:
// the acting judge must be the assigned judge.
func (s *Store) OpenAssignment(ctx context.Context, actor Actor, assignmentID string) (models.Assignment, error) {
	return s.transition(ctx, assignmentID, func(tx *sql.Tx, a models.Assignment) error {
		if err := requireAssignedJudge(actor, a); err != nil {
			return err
		}
		if a.Status != models.StatusPending {
			return transitionError(a, "open")
		}
		_, err := tx.Exec(`
			UPDATE assignment SET status = $1, updated_at = $2 WHERE id = $3
		`, models.StatusInProgress, s.now(), a.ID)
		return err
	})
}

// SubmitEvaluation validates and scores a judge's rating vector, attaches
// the evaluation to the assignment, and moves it to submitted. Only an
// in_progress assignment accepts an evaluation.
func (s *Store) SubmitEvaluation(ctx context.Context, actor Actor, assignmentID string, ratings []int, decision string, ipHash string) (models.Assignment, error) {
	finalScore, err := ScoreRatings(ratings)
	if err != nil {
		return models.Assignment{}, err
	}
	if decision != models.DecisionApproved && decision != models.DecisionRejected {
		return models.Assignment{}, NewValidationError("decision",
			"must be "+models.DecisionApproved+" or "+models.DecisionRejected)
	}

	return s.transition(ctx, assignmentID, func(tx *sql.Tx, a models.Assignment) error {
		if err := requireAssignedJudge(actor, a); err != nil {
			return err
		}
		if a.Status != models.StatusInProgress {
			return transitionError(a, "submit")
		}

		encoded, err := encodeRatings(ratings)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			UPDATE assignment
			SET status = $1, ratings = $2, final_score = $3, decision = $4,
			    ip_hash = $5, updated_at = $6
			WHERE id = $7
		`, models.StatusSubmitted, encoded, finalScore, decision,
			nullString(ipHash), s.now(), a.ID)
		return err
	})
}

// AcknowledgeReview moves a submitted assignment to reviewed, stamping
// decision_at. Admin-scoped.
func (s *Store) AcknowledgeReview(ctx context.Context, assignmentID string) (models.Assignment, error) {
	return s.transition(ctx, assignmentID, func(tx *sql.Tx, a models.Assignment) error {
		if a.Status != models.StatusSubmitted {
			return transitionError(a, "review")
		}
		now := s.now()
		_, err := tx.Exec(`
			UPDATE assignment SET status = $1, decision_at = $2, updated_at = $3 WHERE id = $4
		`, models.StatusReviewed, now, now, a.ID)
		return err
	})
}

// LockAssignment freezes an assignment. Idempotent: locking a locked record
// is a no-op success. Locking a reviewed record is a conflict, since
// reviewed is terminal rather than lockable.
func (s *Store) LockAssignment(ctx context.Context, ideaID, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`
		SELECT status FROM assignment WHERE id = $1 AND idea_id = $2
	`, assignmentID, ideaID).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("query assignment: %w", err)
	}

	if status == models.StatusLocked {
		return tx.Commit() // already locked, no-op
	}
	if status == models.StatusReviewed {
		return fmt.Errorf("assignment %s already reviewed: %w", assignmentID, ErrConflict)
	}

	now := s.now()
	_, err = tx.Exec(`
		UPDATE assignment SET status = $1, locked_at = $2, updated_at = $3 WHERE id = $4
	`, models.StatusLocked, now, now, assignmentID)
	if err != nil {
		return fmt.Errorf("lock assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// transition runs one guarded state change: fetch under the store mutex in
// a fresh transaction, apply the mutation, re-read, commit. Locked records
// reject every mutation.
func (s *Store) transition(ctx context.Context, assignmentID string, mutate func(*sql.Tx, models.Assignment) error) (models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Assignment{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	a, err := getAssignment(tx, assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}

	if a.Status == models.StatusLocked {
		return models.Assignment{}, fmt.Errorf("assignment %s is locked: %w", a.ID, ErrConflict)
	}

	if err := mutate(tx, a); err != nil {
		return models.Assignment{}, err
	}

	updated, err := getAssignment(tx, assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Assignment{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// requireAssignedJudge rejects judge-scoped operations from a judge other
// than the one on the assignment. Admin actors pass through.
func requireAssignedJudge(actor Actor, a models.Assignment) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role != RoleJudge || actor.ID != a.JudgeID {
		return fmt.Errorf("assignment %s belongs to judge %s: %w", a.ID, a.JudgeID, ErrConflict)
	}
	return nil
}

func transitionError(a models.Assignment, event string) error {
	return fmt.Errorf("cannot %s assignment %s in status %s: %w", event, a.ID, a.Status, ErrConflict)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
