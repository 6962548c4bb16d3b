// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The SQL is kept portable across SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Ideas (submitted entries under review)
CREATE TABLE IF NOT EXISTS idea (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    track TEXT NOT NULL DEFAULT '',
    max_judges INTEGER NOT NULL DEFAULT 10 CHECK (max_judges >= 1),
    pdf_url TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_idea_track ON idea(track);

-- Judges (reviewers; capacity NULL = unlimited concurrent assignments)
CREATE TABLE IF NOT EXISTS judge (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    capacity INTEGER CHECK (capacity IS NULL OR capacity >= 1),
    token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_judge_token ON judge(token);

-- Assignments (one idea paired with one judge, with lifecycle state)
CREATE TABLE IF NOT EXISTS assignment (
    id TEXT PRIMARY KEY,
    idea_id TEXT NOT NULL REFERENCES idea(id) ON DELETE CASCADE,
    judge_id TEXT NOT NULL REFERENCES judge(id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'in_progress', 'submitted', 'reviewed', 'locked')),
    ratings TEXT,
    final_score INTEGER CHECK (final_score IS NULL OR (final_score >= 10 AND final_score <= 100)),
    decision TEXT CHECK (decision IS NULL OR decision IN ('APPROVED', 'REJECTED')),
    ip_hash TEXT,
    locked_at TIMESTAMP,
    decision_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (idea_id, judge_id)
);

CREATE INDEX IF NOT EXISTS idx_assignment_idea_id ON assignment(idea_id);
CREATE INDEX IF NOT EXISTS idx_assignment_judge_id ON assignment(judge_id);
CREATE INDEX IF NOT EXISTS idx_assignment_status ON assignment(status);
`
