// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/avelwood/judgeboard/models"
)

// candidateJudge tracks one judge's capacity and running load during an
// auto-assign pass. load includes assignments created earlier in the same
// pass, so later picks see the increment.
type candidateJudge struct {
	id       string
	capacity *int // nil = unlimited
	load     int
}

func (j *candidateJudge) exhausted() bool {
	return j.capacity != nil && j.load >= *j.capacity
}

// AutoAssign fills reviewer gaps: for every idea with fewer assignments
// than its max_judges, it adds judges until the idea reaches its target or
// no eligible judge remains. Judge picks are greedy least-loaded with ties
// broken by ascending judge id; ideas are processed in ascending id order,
// so a run is fully deterministic for a given snapshot.
//
// The whole pass runs in one transaction under the store mutex, and a
// second back-to-back run performs zero additional assignments. Ideas that
// cannot reach their target are reported in Unresolved, never as errors.
//
// This is a greedy heuristic, not an optimal matching; with small reviewer
// pools it can leave an idea unresolved even when a different distribution
// would have satisfied it.
func (s *Store) AutoAssign(ctx context.Context) (models.AutoAssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := models.AutoAssignResult{Unresolved: []string{}}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Snapshot: ideas with targets, judges with loads, existing pairs.
	ideas, err := loadIdeaTargets(tx)
	if err != nil {
		return result, err
	}

	judges, err := loadJudgeCandidates(tx)
	if err != nil {
		return result, err
	}

	assigned, ideaCounts, err := loadAssignedPairs(tx)
	if err != nil {
		return result, err
	}

	now := s.now()
	for _, idea := range ideas {
		need := idea.maxJudges - ideaCounts[idea.id]
		for need > 0 {
			pick := pickJudge(judges, assigned, idea.id)
			if pick == nil {
				result.Unresolved = append(result.Unresolved, idea.id)
				break
			}

			if err := insertAssignment(tx, idea.id, pick.id, now); err != nil {
				return result, err
			}
			pick.load++
			assigned[pairKey(idea.id, pick.id)] = true
			result.AssignedCount++
			need--
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

// pickJudge selects the eligible judge with the lowest current load,
// breaking ties by ascending judge id. judges must be sorted by id.
func pickJudge(judges []*candidateJudge, assigned map[string]bool, ideaID string) *candidateJudge {
	var best *candidateJudge
	for _, j := range judges {
		if j.exhausted() || assigned[pairKey(ideaID, j.id)] {
			continue
		}
		if best == nil || j.load < best.load {
			best = j
		}
	}
	return best
}

type ideaTarget struct {
	id        string
	maxJudges int
}

// loadIdeaTargets returns all ideas in ascending id order.
func loadIdeaTargets(q querier) ([]ideaTarget, error) {
	rows, err := q.Query(`SELECT id, max_judges FROM idea ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer rows.Close()

	var ideas []ideaTarget
	for rows.Next() {
		var it ideaTarget
		if err := rows.Scan(&it.id, &it.maxJudges); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, it)
	}
	return ideas, rows.Err()
}

// loadJudgeCandidates returns all judges with their current loads, sorted
// by ascending id so tie-breaks are deterministic.
func loadJudgeCandidates(q querier) ([]*candidateJudge, error) {
	rows, err := q.Query(`
		SELECT j.id, j.capacity, COUNT(a.id)
		FROM judge j
		LEFT JOIN assignment a ON a.judge_id = j.id
		GROUP BY j.id, j.capacity
	`)
	if err != nil {
		return nil, fmt.Errorf("query judges: %w", err)
	}
	defer rows.Close()

	var judges []*candidateJudge
	for rows.Next() {
		var (
			j        candidateJudge
			capacity *int
		)
		if err := rows.Scan(&j.id, &capacity, &j.load); err != nil {
			return nil, fmt.Errorf("scan judge: %w", err)
		}
		j.capacity = capacity
		judges = append(judges, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(judges, func(i, k int) bool { return judges[i].id < judges[k].id })
	return judges, nil
}

// loadAssignedPairs returns the existing (idea, judge) pairs and per-idea
// assignment counts from the snapshot.
func loadAssignedPairs(q querier) (map[string]bool, map[string]int, error) {
	rows, err := q.Query(`SELECT idea_id, judge_id FROM assignment`)
	if err != nil {
		return nil, nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	pairs := make(map[string]bool)
	counts := make(map[string]int)
	for rows.Next() {
		var ideaID, judgeID string
		if err := rows.Scan(&ideaID, &judgeID); err != nil {
			return nil, nil, fmt.Errorf("scan assignment: %w", err)
		}
		pairs[pairKey(ideaID, judgeID)] = true
		counts[ideaID]++
	}
	return pairs, counts, rows.Err()
}

func pairKey(ideaID, judgeID string) string {
	return ideaID + "\x00" + judgeID
}
