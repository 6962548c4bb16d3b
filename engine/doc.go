// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the assignment and ranking engine: reviewer
allocation under capacity limits, the assignment lifecycle, evaluation
scoring, and the deterministic leaderboard.

# Store

All state lives behind engine.Store, created from a *sql.DB:

	store := engine.NewStore(db)

Mutations (create, delete, lock, lifecycle transitions, auto-assign) run
inside one transaction while holding a whole-store mutex, so capacity
checks and inserts always see a consistent snapshot. Reads run without the
mutex but within one transaction each.

# Lifecycle

Assignments move through pending → in_progress → submitted → reviewed.
Locked is reachable from any non-terminal state and freezes the record
permanently: no further mutation, no deletion. Locking is idempotent.

# Capacity

Every stored assignment occupies one slot on its idea (max_judges) and one
on its judge (capacity, when set). Deleting the assignment is the only way
to release the slots.

# Scoring

An evaluation is ten integer ratings in [1,10]; the final score is their
sum ([10,100]). Idea-level aggregation is the arithmetic mean of completed
final scores.

# Auto-assign

AutoAssign fills reviewer gaps greedily: under-assigned ideas in ascending
id order, each picking the least-loaded eligible judge (ties by ascending
judge id). Ideas that cannot reach their target are reported as unresolved,
never as errors, and a second back-to-back run assigns nothing.

# Errors

Failures wrap ErrConflict, ErrCapacityExceeded, or ErrNotFound, or are a
*ValidationError. Callers branch with errors.Is / errors.As.
*/
package engine
