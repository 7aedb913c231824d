// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/ecocondor/db"
	"github.com/danielhkuo/ecocondor/models"
)

type activityRow struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	Material     string         `db:"material"`
	Quantity     float64        `db:"quantity"`
	Unit         string         `db:"unit"`
	PointsEarned int64          `db:"points_earned"`
	Location     sql.NullString `db:"location"`
	CreatedAt    string         `db:"created_at"`
}

func (r activityRow) toModel() (models.RecyclingActivity, error) {
	createdAt, err := db.ParseTime(r.CreatedAt)
	if err != nil {
		return models.RecyclingActivity{}, err
	}
	a := models.RecyclingActivity{
		ID:           r.ID,
		UserID:       r.UserID,
		Material:     r.Material,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		PointsEarned: r.PointsEarned,
		CreatedAt:    createdAt,
	}
	if r.Location.Valid {
		loc := r.Location.String
		a.Location = &loc
	}
	return a, nil
}

// RecordActivity appends a to the ledger and credits its points to the
// owner's profile in the same transaction. The activity is kept even when no
// profile exists; credited reports whether a profile received the points.
func (s *Store) RecordActivity(ctx context.Context, a models.RecyclingActivity) (_ models.RecyclingActivity, credited bool, err error) {
	a.ID = s.newID()
	a.CreatedAt = a.CreatedAt.UTC().Truncate(time.Microsecond)

	var location sql.NullString
	if a.Location != nil {
		location = sql.NullString{String: *a.Location, Valid: true}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return a, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO recycling_activities (id, user_id, material, quantity, unit, points_earned, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), a.ID, a.UserID, a.Material, a.Quantity, a.Unit, a.PointsEarned, location, db.FormatTime(a.CreatedAt))
	if err != nil {
		return a, false, fmt.Errorf("failed to insert activity: %w", err)
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE users
		SET points = points + ?, total_recycled = total_recycled + 1, updated_at = ?
		WHERE uid = ?
	`), a.PointsEarned, db.FormatTime(a.CreatedAt), a.UserID)
	if err != nil {
		return a, false, fmt.Errorf("failed to credit points: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return a, false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return a, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return a, n > 0, nil
}

// ListActivities returns userID's activities, newest first. A limit <= 0
// returns all of them.
func (s *Store) ListActivities(ctx context.Context, userID string, limit int) ([]models.RecyclingActivity, error) {
	query := `
		SELECT id, user_id, material, quantity, unit, points_earned, location, created_at
		FROM recycling_activities
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []activityRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}

	activities := make([]models.RecyclingActivity, 0, len(rows))
	for _, row := range rows {
		a, err := row.toModel()
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}
