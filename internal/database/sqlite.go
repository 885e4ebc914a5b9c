package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewSqlite opens (or creates) the sqlite database and initializes the
// schema
func NewSqlite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite: single writer

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// initSchema creates the required tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS video_analysis (
			id                       TEXT PRIMARY KEY,
			video_id                 TEXT NOT NULL,
			video_title              TEXT,
			channel_name             TEXT,
			analysis_date            TEXT NOT NULL,
			total_comments_analyzed  INTEGER,
			average_sentiment        REAL,
			analysis_data            TEXT,
			source_type              TEXT DEFAULT 'comments'
		)
	`)
	if err != nil {
		return fmt.Errorf("creating video_analysis table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS comments (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id      TEXT,
			video_id         TEXT NOT NULL,
			comment_id       TEXT UNIQUE,
			author           TEXT,
			text             TEXT,
			published_at     TEXT,
			like_count       INTEGER,
			reply_count      INTEGER DEFAULT 0,
			sentiment_score  REAL DEFAULT 0.0,
			FOREIGN KEY(analysis_id) REFERENCES video_analysis(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}
