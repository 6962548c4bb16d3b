// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelwood/judgeboard/models"
)

// Store is the durable record of each (idea, judge) pairing and its
// lifecycle state. All mutations run inside a single transaction while
// holding the store mutex, so capacity checks and inserts always observe
// one consistent snapshot. Reads are transaction-scoped and lock-free.
type Store struct {
	db *sql.DB

	// mu serializes mutating operations. Capacity checks are
	// check-then-act; one assignment changes both an idea's and a
	// judge's counts, so a whole-store lock keeps both consistent.
	mu sync.Mutex

	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Role identifies the kind of caller invoking an engine operation.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleJudge Role = "judge"
)

// Actor is the caller's asserted identity, passed explicitly into every
// operation instead of being read from ambient session state. The engine
// trusts the role; authentication happens at the transport layer.
type Actor struct {
	Role Role
	ID   string
}

// querier is the subset of *sql.DB and *sql.Tx the store helpers need.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// CreateAssignments creates a pending assignment between the idea and each
// listed judge. The batch is atomic: any conflict or capacity failure rolls
// back the whole request. Returns the idea's full assignment list and its
// effective max_judges after the insert.
func (s *Store) CreateAssignments(ctx context.Context, ideaID string, judgeIDs []string) ([]models.Assignment, int, error) {
	if ideaID == "" {
		return nil, 0, NewValidationError("idea_id", "is required")
	}
	if len(judgeIDs) == 0 {
		return nil, 0, NewValidationError("judge_ids", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	maxJudges, err := ideaMaxJudges(tx, ideaID)
	if err != nil {
		return nil, 0, err
	}

	ideaCount, err := countAssignmentsBy(tx, "idea_id", ideaID)
	if err != nil {
		return nil, 0, err
	}
	if ideaCount+len(judgeIDs) > maxJudges {
		return nil, 0, fmt.Errorf("idea %s has %d of %d reviewer slots filled: %w",
			ideaID, ideaCount, maxJudges, ErrCapacityExceeded)
	}

	seen := make(map[string]bool, len(judgeIDs))
	for _, judgeID := range judgeIDs {
		if seen[judgeID] {
			return nil, 0, NewValidationError("judge_ids", "contains duplicate "+judgeID)
		}
		seen[judgeID] = true

		capacity, err := judgeCapacity(tx, judgeID)
		if err != nil {
			return nil, 0, err
		}

		var exists bool
		err = tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM assignment WHERE idea_id = $1 AND judge_id = $2)
		`, ideaID, judgeID).Scan(&exists)
		if err != nil {
			return nil, 0, fmt.Errorf("check existing pair: %w", err)
		}
		if exists {
			return nil, 0, fmt.Errorf("judge %s already assigned to idea %s: %w",
				judgeID, ideaID, ErrConflict)
		}

		if capacity != nil {
			load, err := countAssignmentsBy(tx, "judge_id", judgeID)
			if err != nil {
				return nil, 0, err
			}
			if load+1 > *capacity {
				return nil, 0, fmt.Errorf("judge %s at capacity %d: %w",
					judgeID, *capacity, ErrCapacityExceeded)
			}
		}

		if err := insertAssignment(tx, ideaID, judgeID, s.now()); err != nil {
			return nil, 0, err
		}
	}

	assignments, err := listAssignmentsTx(tx, ideaID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}

	return assignments, maxJudges, nil
}

// DeleteAssignment removes an unlocked assignment, freeing the idea's and
// the judge's capacity slots. Locked records cannot be deleted.
func (s *Store) DeleteAssignment(ctx context.Context, ideaID, assignmentID string) error {
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
		return fmt.Errorf("assignment %s is locked: %w", assignmentID, ErrConflict)
	}

	if _, err := tx.Exec(`DELETE FROM assignment WHERE id = $1`, assignmentID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListAssignments returns the idea's current assignments and its effective
// max_judges, read from one snapshot.
func (s *Store) ListAssignments(ctx context.Context, ideaID string) ([]models.Assignment, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	maxJudges, err := ideaMaxJudges(tx, ideaID)
	if err != nil {
		return nil, 0, err
	}

	assignments, err := listAssignmentsTx(tx, ideaID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}
	return assignments, maxJudges, nil
}

// GetAssignment fetches a single assignment by id.
func (s *Store) GetAssignment(ctx context.Context, assignmentID string) (models.Assignment, error) {
	return getAssignment(s.db, assignmentID)
}

// Shared helpers, usable inside or outside a transaction.

func ideaMaxJudges(q querier, ideaID string) (int, error) {
	var maxJudges int
	err := q.QueryRow(`SELECT max_judges FROM idea WHERE id = $1`, ideaID).Scan(&maxJudges)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("idea %s: %w", ideaID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("query idea: %w", err)
	}
	return maxJudges, nil
}

// judgeCapacity returns the judge's capacity, nil meaning unlimited.
func judgeCapacity(q querier, judgeID string) (*int, error) {
	var capacity sql.NullInt64
	err := q.QueryRow(`SELECT capacity FROM judge WHERE id = $1`, judgeID).Scan(&capacity)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("judge %s: %w", judgeID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query judge: %w", err)
	}
	if !capacity.Valid {
		return nil, nil
	}
	c := int(capacity.Int64)
	return &c, nil
}

// countAssignmentsBy counts non-deleted assignments for one idea or judge.
// Every stored row occupies a slot regardless of lifecycle state; deletion
// is the only release.
func countAssignmentsBy(q querier, column, id string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM assignment WHERE ` + column + ` = $1`
	if err := q.QueryRow(query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return count, nil
}

func insertAssignment(q querier, ideaID, judgeID string, now time.Time) error {
	_, err := q.Exec(`
		INSERT INTO assignment (id, idea_id, judge_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), ideaID, judgeID, models.StatusPending, now, now)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

const assignmentColumns = `id, idea_id, judge_id, status, ratings, final_score,
	decision, locked_at, decision_at, created_at, updated_at`

func listAssignmentsTx(q querier, ideaID string) ([]models.Assignment, error) {
	rows, err := q.Query(`
		SELECT `+assignmentColumns+`
		FROM assignment
		WHERE idea_id = $1
		ORDER BY created_at, id
	`, ideaID)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func getAssignment(q querier, assignmentID string) (models.Assignment, error) {
	row := q.QueryRow(`
		SELECT `+assignmentColumns+`
		FROM assignment
		WHERE id = $1
	`, assignmentID)

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return models.Assignment{}, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanAssignment.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (models.Assignment, error) {
	var (
		a          models.Assignment
		ratings    sql.NullString
		finalScore sql.NullInt64
		decision   sql.NullString
		lockedAt   sql.NullTime
		decisionAt sql.NullTime
	)

	err := row.Scan(&a.ID, &a.IdeaID, &a.JudgeID, &a.Status, &ratings,
		&finalScore, &decision, &lockedAt, &decisionAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Assignment{}, err
		}
		return models.Assignment{}, fmt.Errorf("scan assignment: %w", err)
	}

	if ratings.Valid {
		if err := json.Unmarshal([]byte(ratings.String), &a.Ratings); err != nil {
			return models.Assignment{}, fmt.Errorf("decode ratings: %w", err)
		}
	}
	if finalScore.Valid {
		score := int(finalScore.Int64)
		a.FinalScore = &score
	}
	if decision.Valid {
		a.Decision = &decision.String
	}
	if lockedAt.Valid {
		t := lockedAt.Time
		a.LockedAt = &t
	}
	if decisionAt.Valid {
		t := decisionAt.Time
		a.DecisionAt = &t
	}

	return a, nil
}

func encodeRatings(ratings []int) (string, error) {
	raw, err := json.Marshal(ratings)
	if err != nil {
		return "", fmt.Errorf("encode ratings: %w", err)
	}
	return string(raw), nil
}
