// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/avelwood/judgeboard/models"
)

// Rank produces the leaderboard: every idea ordered by aggregated score
// with deterministic tie-breaks. All inputs are read within a single
// transaction so a ranking never mixes pre- and post-update views of the
// same assignment.
func (s *Store) Rank(ctx context.Context) ([]models.RankedIdea, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	ideas, err := loadIdeaRows(tx)
	if err != nil {
		return nil, err
	}

	judgeNames, err := loadJudgeNames(tx)
	if err != nil {
		return nil, err
	}

	byIdea, err := loadAssignmentsByIdea(tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	ranked := make([]models.RankedIdea, 0, len(ideas))
	for _, idea := range ideas {
		assignments := byIdea[idea.ID]
		stats := aggregateStats(idea.ID, assignments)

		judges := make([]string, 0, len(assignments))
		for _, a := range assignments {
			name := judgeNames[a.JudgeID]
			if name == "" {
				name = a.JudgeID
			}
			judges = append(judges, name)
		}

		ranked = append(ranked, models.RankedIdea{
			IdeaID:           idea.ID,
			Title:            idea.Title,
			Track:            idea.Track,
			AverageScore:     stats.AverageScore,
			CompletedCount:   stats.CompletedCount,
			TotalAssignments: stats.TotalAssignments,
			LatestActivity:   stats.LatestActivity,
			Judges:           judges,
		})
	}

	// Sort by ranking criteria (lexicographic order)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. Scored ideas come before unscored ones
		if (a.AverageScore == nil) != (b.AverageScore == nil) {
			return a.AverageScore != nil
		}

		// 2. Higher average wins
		if a.AverageScore != nil && *a.AverageScore != *b.AverageScore {
			return *a.AverageScore > *b.AverageScore
		}

		// 3. More completed evaluations wins
		if a.CompletedCount != b.CompletedCount {
			return a.CompletedCount > b.CompletedCount
		}

		// 4. More recent activity wins
		at, bt := a.LatestActivity, b.LatestActivity
		if (at == nil) != (bt == nil) {
			return at != nil
		}
		if at != nil && !at.Equal(*bt) {
			return at.After(*bt)
		}

		// 5. Stable tie-breaking by idea ID (ascending)
		return a.IdeaID < b.IdeaID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].RankLabel = humanize.Ordinal(i + 1)
	}

	return ranked, nil
}

type ideaRow struct {
	ID    string
	Title string
	Track string
}

func loadIdeaRows(q querier) ([]ideaRow, error) {
	rows, err := q.Query(`SELECT id, title, track FROM idea`)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer rows.Close()

	var ideas []ideaRow
	for rows.Next() {
		var it ideaRow
		if err := rows.Scan(&it.ID, &it.Title, &it.Track); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, it)
	}
	return ideas, rows.Err()
}

func loadJudgeNames(q querier) (map[string]string, error) {
	rows, err := q.Query(`SELECT id, name FROM judge`)
	if err != nil {
		return nil, fmt.Errorf("query judges: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan judge: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func loadAssignmentsByIdea(q querier) (map[string][]models.Assignment, error) {
	rows, err := q.Query(`
		SELECT ` + assignmentColumns + `
		FROM assignment
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	byIdea := make(map[string][]models.Assignment)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		byIdea[a.IdeaID] = append(byIdea[a.IdeaID], a)
	}
	return byIdea, rows.Err()
}
