// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/ecocondor/db"
	"github.com/danielhkuo/ecocondor/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Store is the record store shared by all request handlers. It is safe for
// concurrent use.
type Store struct {
	db    *sqlx.DB
	newID func() string
}

func New(conn *sqlx.DB) *Store {
	return &Store{db: conn, newID: uuid.NewString}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type userRow struct {
	UID           string         `db:"uid"`
	Email         string         `db:"email"`
	DisplayName   string         `db:"display_name"`
	Points        int64          `db:"points"`
	TotalRecycled int64          `db:"total_recycled"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     sql.NullString `db:"updated_at"`
}

func (r userRow) toModel() (models.UserProfile, error) {
	createdAt, err := db.ParseTime(r.CreatedAt)
	if err != nil {
		return models.UserProfile{}, err
	}
	p := models.UserProfile{
		UID:           r.UID,
		Email:         r.Email,
		DisplayName:   r.DisplayName,
		Points:        r.Points,
		TotalRecycled: r.TotalRecycled,
		CreatedAt:     createdAt,
	}
	if r.UpdatedAt.Valid {
		updatedAt, err := db.ParseTime(r.UpdatedAt.String)
		if err != nil {
			return models.UserProfile{}, err
		}
		p.UpdatedAt = &updatedAt
	}
	return p, nil
}

// PutUser writes p at its uid, replacing any existing profile. replaced
// reports whether a profile was overwritten.
func (s *Store) PutUser(ctx context.Context, p models.UserProfile) (replaced bool, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.GetContext(ctx, &existing, tx.Rebind(`SELECT COUNT(*) FROM users WHERE uid = ?`), p.UID)
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}

	var updatedAt sql.NullString
	if p.UpdatedAt != nil {
		updatedAt = sql.NullString{String: db.FormatTime(*p.UpdatedAt), Valid: true}
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO users (uid, email, display_name, points, total_recycled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			points = excluded.points,
			total_recycled = excluded.total_recycled,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`), p.UID, p.Email, p.DisplayName, p.Points, p.TotalRecycled, db.FormatTime(p.CreatedAt), updatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return existing > 0, nil
}

func (s *Store) GetUser(ctx context.Context, uid string) (models.UserProfile, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT uid, email, display_name, points, total_recycled, created_at, updated_at
		FROM users
		WHERE uid = ?
	`), uid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to query user: %w", err)
	}
	return row.toModel()
}

// UpdateUser sets updated_at and, when displayName is non-nil, the display
// name. Returns ErrNotFound when no profile exists at uid.
func (s *Store) UpdateUser(ctx context.Context, uid string, displayName *string, at time.Time) error {
	var (
		res sql.Result
		err error
	)
	if displayName != nil {
		res, err = s.db.ExecContext(ctx, s.db.Rebind(`
			UPDATE users SET display_name = ?, updated_at = ? WHERE uid = ?
		`), *displayName, db.FormatTime(at), uid)
	} else {
		res, err = s.db.ExecContext(ctx, s.db.Rebind(`
			UPDATE users SET updated_at = ? WHERE uid = ?
		`), db.FormatTime(at), uid)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
