// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The SQL is portable across SQLite and PostgreSQL.

# Tables

The schema includes:

  - idea: Submitted entries with per-idea reviewer target (max_judges)
  - judge: Reviewers with optional capacity and auth token
  - assignment: One (idea, judge) pairing with lifecycle state,
    evaluation payload, and final score

# Relationships

	idea  1──* assignment
	judge 1──* assignment

Foreign keys use ON DELETE CASCADE; the (idea_id, judge_id) pair is
UNIQUE, so at most one assignment can exist per pairing.

# Indexes

Performance indexes on:

  - idea.track
  - judge.token (unique)
  - assignment.idea_id
  - assignment.judge_id
  - assignment.status
*/
package db
