// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/avelwood/judgeboard/models"
)

// ScoreRatings converts a judge's rating vector into a final score.
// The vector must contain exactly ten integers, each in [1,10]; the final
// score is their sum, so it always lands in [10,100].
func ScoreRatings(ratings []int) (int, error) {
	if len(ratings) != models.RatingCount {
		return 0, NewValidationError("ratings",
			fmt.Sprintf("must have exactly %d entries, got %d", models.RatingCount, len(ratings)))
	}

	sum := 0
	for i, r := range ratings {
		if r < 1 || r > 10 {
			return 0, NewValidationError("ratings",
				fmt.Sprintf("entry %d must be between 1 and 10, got %d", i, r))
		}
		sum += r
	}
	return sum, nil
}

// IdeaStats reads the idea's assignments from one snapshot and aggregates
// them: mean of final scores (nil until any evaluation completes),
// completed and total counts, and the most recent activity timestamp.
func (s *Store) IdeaStats(ctx context.Context, ideaID string) (models.IdeaStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.IdeaStats{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := ideaMaxJudges(tx, ideaID); err != nil {
		return models.IdeaStats{}, err
	}

	assignments, err := listAssignmentsTx(tx, ideaID)
	if err != nil {
		return models.IdeaStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.IdeaStats{}, fmt.Errorf("commit: %w", err)
	}

	return aggregateStats(ideaID, assignments), nil
}

// aggregateStats rolls a set of assignments into idea-level stats.
func aggregateStats(ideaID string, assignments []models.Assignment) models.IdeaStats {
	stats := models.IdeaStats{
		IdeaID:           ideaID,
		TotalAssignments: len(assignments),
	}

	sum := 0
	var latest time.Time
	for _, a := range assignments {
		if a.FinalScore != nil {
			sum += *a.FinalScore
			stats.CompletedCount++
		}
		if a.UpdatedAt.After(latest) {
			latest = a.UpdatedAt
		}
		if a.DecisionAt != nil && a.DecisionAt.After(latest) {
			latest = *a.DecisionAt
		}
	}

	if stats.CompletedCount > 0 {
		avg := float64(sum) / float64(stats.CompletedCount)
		stats.AverageScore = &avg
	}
	if !latest.IsZero() {
		stats.LatestActivity = &latest
	}
	return stats
}
