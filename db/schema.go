// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Statements are kept to the subset of SQL shared by PostgreSQL and SQLite.
// Timestamps are fixed-width UTC text so ORDER BY created_at is chronological.
var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS users (
		uid TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		display_name TEXT NOT NULL,
		points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
		total_recycled BIGINT NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	)`,

	// Recycling activities (no FK: activities are kept even without a profile)
	`CREATE TABLE IF NOT EXISTS recycling_activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		material TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		points_earned BIGINT NOT NULL,
		location TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_user_created ON recycling_activities(user_id, created_at)`,

	// Rewards catalog
	`CREATE TABLE IF NOT EXISTS rewards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		points_cost BIGINT NOT NULL CHECK (points_cost > 0),
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reward_available_cost ON rewards(available, points_cost)`,

	// Redemptions
	`CREATE TABLE IF NOT EXISTS redemptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		reward_id TEXT NOT NULL,
		reward_name TEXT NOT NULL,
		points_spent BIGINT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_redemption_user_created ON redemptions(user_id, created_at)`,
}

// TimeLayout is the stored form of every timestamp column.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a TimeLayout value.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
