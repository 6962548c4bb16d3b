// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelwood/judgeboard/models"
	"github.com/avelwood/judgeboard/testutil"
)

func TestCreateAssignments_Pending(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	j1, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	j2, _ := testutil.SeedJudge(t, conn, "Judge B", nil)

	assignments, maxJudges, err := store.CreateAssignments(context.Background(), ideaID, []string{j1, j2})
	require.NoError(t, err)
	require.Equal(t, 5, maxJudges)
	require.Len(t, assignments, 2)

	for _, a := range assignments {
		require.Equal(t, models.StatusPending, a.Status)
		require.Equal(t, ideaID, a.IdeaID)
		require.Nil(t, a.FinalScore)
		require.NotEmpty(t, a.ID)
	}
}

func TestCreateAssignments_DuplicatePairConflict(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	judgeID, _ := testutil.SeedJudge(t, conn, "Judge A", nil)

	_, _, err := store.CreateAssignments(context.Background(), ideaID, []string{judgeID})
	require.NoError(t, err)

	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{judgeID})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateAssignments_BatchIsAtomic(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	j1, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	j2, _ := testutil.SeedJudge(t, conn, "Judge B", nil)

	_, _, err := store.CreateAssignments(context.Background(), ideaID, []string{j2})
	require.NoError(t, err)

	// j2 is already assigned, so the whole batch must roll back.
	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{j1, j2})
	require.ErrorIs(t, err, ErrConflict)

	assignments, _, err := store.ListAssignments(context.Background(), ideaID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, j2, assignments[0].JudgeID)
}

func TestCreateAssignments_IdeaCapacity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Tiny Idea", 2)
	j1, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	j2, _ := testutil.SeedJudge(t, conn, "Judge B", nil)
	j3, _ := testutil.SeedJudge(t, conn, "Judge C", nil)

	_, _, err := store.CreateAssignments(context.Background(), ideaID, []string{j1, j2})
	require.NoError(t, err)

	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{j3})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	assignments, _, err := store.ListAssignments(context.Background(), ideaID)
	require.NoError(t, err)
	require.Len(t, assignments, 2, "idea must never exceed max_judges")
}

func TestCreateAssignments_JudgeCapacity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	idea1 := testutil.SeedIdea(t, conn, "Idea One", 5)
	idea2 := testutil.SeedIdea(t, conn, "Idea Two", 5)
	judgeID, _ := testutil.SeedJudge(t, conn, "Busy Judge", testutil.IntPtr(1))

	_, _, err := store.CreateAssignments(context.Background(), idea1, []string{judgeID})
	require.NoError(t, err)

	_, _, err = store.CreateAssignments(context.Background(), idea2, []string{judgeID})
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestCreateAssignments_UnknownIdeaAndJudge(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	judgeID, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	_, _, err := store.CreateAssignments(context.Background(), "missing-idea", []string{judgeID})
	require.ErrorIs(t, err, ErrNotFound)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{"missing-judge"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAssignment_FreesCapacity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Tiny Idea", 1)
	j1, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	j2, _ := testutil.SeedJudge(t, conn, "Judge B", nil)

	assignments, _, err := store.CreateAssignments(context.Background(), ideaID, []string{j1})
	require.NoError(t, err)

	// Slot occupied: second judge rejected.
	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{j2})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// Deleting releases the slot.
	err = store.DeleteAssignment(context.Background(), ideaID, assignments[0].ID)
	require.NoError(t, err)

	_, _, err = store.CreateAssignments(context.Background(), ideaID, []string{j2})
	require.NoError(t, err)
}

func TestDeleteAssignment_LockedConflict(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	judgeID, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	aid := testutil.SeedAssignment(t, conn, ideaID, judgeID, models.StatusLocked)

	err := store.DeleteAssignment(context.Background(), ideaID, aid)
	require.ErrorIs(t, err, ErrConflict)

	// The assignment list is unchanged afterward.
	assignments, _, err := store.ListAssignments(context.Background(), ideaID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, aid, assignments[0].ID)
	require.Equal(t, models.StatusLocked, assignments[0].Status)
}

func TestDeleteAssignment_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	err := store.DeleteAssignment(context.Background(), ideaID, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAssignments_ReportsMaxJudges(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 7)

	assignments, maxJudges, err := store.ListAssignments(context.Background(), ideaID)
	require.NoError(t, err)
	require.Equal(t, 7, maxJudges)
	require.Empty(t, assignments)

	_, _, err = store.ListAssignments(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAssignment_RoundTripsEvaluation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)

	ideaID := testutil.SeedIdea(t, conn, "Idea One", 5)
	judgeID, _ := testutil.SeedJudge(t, conn, "Judge A", nil)
	aid := testutil.SeedAssignment(t, conn, ideaID, judgeID, models.StatusInProgress)

	actor := Actor{Role: RoleJudge, ID: judgeID}
	ratings := []int{9, 8, 9, 10, 7, 9, 8, 10, 9, 8}
	_, err := store.SubmitEvaluation(context.Background(), actor, aid, ratings, models.DecisionApproved, "")
	require.NoError(t, err)

	got, err := store.GetAssignment(context.Background(), aid)
	require.NoError(t, err)
	require.Equal(t, ratings, got.Ratings)
	require.NotNil(t, got.FinalScore)
	require.Equal(t, 87, *got.FinalScore)
	require.NotNil(t, got.Decision)
	require.Equal(t, models.DecisionApproved, *got.Decision)
}
