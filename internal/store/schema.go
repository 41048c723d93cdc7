package store

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id         INTEGER PRIMARY KEY,
		text       TEXT NOT NULL DEFAULT '',
		subject    TEXT NOT NULL DEFAULT '',
		pattern    TEXT NOT NULL DEFAULT '',
		year       INTEGER,
		exam_name  TEXT NOT NULL DEFAULT '',
		tags       TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence                INTEGER NOT NULL,
		user_id                 TEXT NOT NULL,
		question_id             INTEGER NOT NULL REFERENCES questions(id),
		selected_option_id      INTEGER,
		is_correct              INTEGER NOT NULL DEFAULT 0,
		is_skipped              INTEGER NOT NULL DEFAULT 0,
		time_taken_seconds      INTEGER NOT NULL DEFAULT 0,
		confidence_score        INTEGER NOT NULL DEFAULT 100,
		is_bookmarked           INTEGER NOT NULL DEFAULT 0,
		is_cleared_from_library INTEGER NOT NULL DEFAULT 0,
		eliminated_options      TEXT NOT NULL DEFAULT '[]',
		source_mode             TEXT NOT NULL DEFAULT 'practice',
		session_id              TEXT NOT NULL DEFAULT '',
		attempted_at            INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_user_time ON attempts (user_id, attempted_at)`,
	`CREATE INDEX IF NOT EXISTS attempts_user_session ON attempts (user_id, session_id)`,
	`CREATE TABLE IF NOT EXISTS cutoffs (
		exam_name   TEXT NOT NULL,
		year        INTEGER NOT NULL,
		general     REAL NOT NULL,
		ews         REAL NOT NULL DEFAULT 0,
		obc         REAL NOT NULL DEFAULT 0,
		sc          REAL NOT NULL DEFAULT 0,
		st          REAL NOT NULL DEFAULT 0,
		is_official INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (exam_name, year)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates every table and index. It is safe to run on an existing
// database.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
