// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/ecocondor/db"
	"github.com/danielhkuo/ecocondor/models"
)

type redemptionRow struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	RewardID    string `db:"reward_id"`
	RewardName  string `db:"reward_name"`
	PointsSpent int64  `db:"points_spent"`
	Status      string `db:"status"`
	CreatedAt   string `db:"created_at"`
}

func (r redemptionRow) toModel() (models.Redemption, error) {
	createdAt, err := db.ParseTime(r.CreatedAt)
	if err != nil {
		return models.Redemption{}, err
	}
	return models.Redemption{
		ID:          r.ID,
		UserID:      r.UserID,
		RewardID:    r.RewardID,
		RewardName:  r.RewardName,
		PointsSpent: r.PointsSpent,
		Status:      r.Status,
		CreatedAt:   createdAt,
	}, nil
}

// ListRewards returns the catalog ordered by cost, cheapest first.
func (s *Store) ListRewards(ctx context.Context, availableOnly bool) ([]models.Reward, error) {
	query := `SELECT id, name, description, points_cost, available FROM rewards`
	var args []any
	if availableOnly {
		query += ` WHERE available = ?`
		args = append(args, true)
	}
	query += ` ORDER BY points_cost ASC, id ASC`

	rewards := []models.Reward{}
	if err := s.db.SelectContext(ctx, &rewards, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	return rewards, nil
}

func (s *Store) GetReward(ctx context.Context, id string) (models.Reward, error) {
	var r models.Reward
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`
		SELECT id, name, description, points_cost, available
		FROM rewards
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reward{}, ErrNotFound
	}
	if err != nil {
		return models.Reward{}, fmt.Errorf("failed to query reward: %w", err)
	}
	return r, nil
}

// UpsertReward inserts r or replaces the catalog entry with the same id.
func (s *Store) UpsertReward(ctx context.Context, r models.Reward) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO rewards (id, name, description, points_cost, available)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			points_cost = excluded.points_cost,
			available = excluded.available
	`), r.ID, r.Name, r.Description, r.PointsCost, r.Available)
	if err != nil {
		return fmt.Errorf("failed to upsert reward: %w", err)
	}
	return nil
}

// Redeem debits red.PointsSpent from the user's balance and appends the
// redemption in one transaction. The debit is conditional on the balance
// covering the cost, so concurrent redemptions cannot overspend.
//
// Returns ErrNotFound when the user has no profile and ErrInsufficientPoints
// when the balance is too low; in both cases nothing is written.
func (s *Store) Redeem(ctx context.Context, red models.Redemption) (_ models.Redemption, remaining int64, err error) {
	red.ID = s.newID()
	red.CreatedAt = red.CreatedAt.UTC().Truncate(time.Microsecond)
	now := db.FormatTime(red.CreatedAt)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return red, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE users
		SET points = points - ?, updated_at = ?
		WHERE uid = ? AND points >= ?
	`), red.PointsSpent, now, red.UserID, red.PointsSpent)
	if err != nil {
		return red, 0, fmt.Errorf("failed to debit points: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return red, 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if n == 0 {
		var exists int
		err = tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM users WHERE uid = ?`), red.UserID)
		if err != nil {
			return red, 0, fmt.Errorf("failed to query user: %w", err)
		}
		if exists == 0 {
			return red, 0, ErrNotFound
		}
		return red, 0, ErrInsufficientPoints
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO redemptions (id, user_id, reward_id, reward_name, points_spent, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), red.ID, red.UserID, red.RewardID, red.RewardName, red.PointsSpent, red.Status, now)
	if err != nil {
		return red, 0, fmt.Errorf("failed to insert redemption: %w", err)
	}

	if err := tx.GetContext(ctx, &remaining, tx.Rebind(`SELECT points FROM users WHERE uid = ?`), red.UserID); err != nil {
		return red, 0, fmt.Errorf("failed to read balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return red, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return red, remaining, nil
}

// ListRedemptions returns every redemption of userID, newest first.
func (s *Store) ListRedemptions(ctx context.Context, userID string) ([]models.Redemption, error) {
	var rows []redemptionRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT id, user_id, reward_id, reward_name, points_spent, status, created_at
		FROM redemptions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}

	redemptions := make([]models.Redemption, 0, len(rows))
	for _, row := range rows {
		r, err := row.toModel()
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, r)
	}
	return redemptions, nil
}
