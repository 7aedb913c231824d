// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recycling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ecocondor/apperr"
	"github.com/danielhkuo/ecocondor/metrics"
	"github.com/danielhkuo/ecocondor/models"
)

// DefaultHistoryLimit applies when History is called without a positive limit.
const DefaultHistoryLimit = 20

// MaxHistoryLimit caps the limit a caller may ask History for.
const MaxHistoryLimit = 100

// MaxPointsPerActivity bounds the points one activity can earn, keeping
// pointsEarned well inside int64.
const MaxPointsPerActivity = 1_000_000

// Store is the subset of the record store the ledger needs.
type Store interface {
	RecordActivity(ctx context.Context, a models.RecyclingActivity) (models.RecyclingActivity, bool, error)
	ListActivities(ctx context.Context, userID string, limit int) ([]models.RecyclingActivity, error)
}

// Ledger records recycling activity and credits the points it earns.
type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(s Store) *Ledger {
	return &Ledger{store: s, now: time.Now}
}

// Register appends an activity for userID and credits its points. It returns
// the stored activity and a confirmation message for the user.
//
// When userID has no profile the activity is still recorded and the credit is
// skipped; that divergence is logged and counted rather than returned.
func (l *Ledger) Register(ctx context.Context, userID string, req models.RegisterActivityRequest) (models.RecyclingActivity, string, error) {
	material := NormalizeMaterial(req.Material)
	if material == "" || req.Quantity <= 0 {
		return models.RecyclingActivity{}, "", apperr.InvalidArgument("material y quantity son requeridos")
	}
	if req.Quantity*float64(RateFor(material)) > MaxPointsPerActivity {
		return models.RecyclingActivity{}, "", apperr.InvalidArgument("quantity excede el máximo permitido")
	}

	unit := req.Unit
	if unit == "" {
		unit = models.DefaultUnit
	}

	activity := models.RecyclingActivity{
		UserID:       userID,
		Material:     material,
		Quantity:     req.Quantity,
		Unit:         unit,
		PointsEarned: PointsFor(material, req.Quantity),
		CreatedAt:    l.now(),
	}
	if req.Location != "" {
		loc := req.Location
		activity.Location = &loc
	}

	activity, credited, err := l.store.RecordActivity(ctx, activity)
	if err != nil {
		return models.RecyclingActivity{}, "", apperr.StoreFailure("record activity", err)
	}

	label := activity.Material
	if !Known(label) {
		label = "other"
	}
	metrics.ActivityRecorded(label, activity.PointsEarned, credited)
	if !credited {
		slog.Warn("activity recorded without profile to credit",
			"user_id", userID,
			"activity_id", activity.ID,
			"points", activity.PointsEarned,
		)
	}

	msg := fmt.Sprintf("¡Reciclaje registrado! Ganaste %d puntos", activity.PointsEarned)
	return activity, msg, nil
}

// History returns up to limit of userID's activities, newest first. The
// limit is clamped to MaxHistoryLimit.
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]models.RecyclingActivity, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	activities, err := l.store.ListActivities(ctx, userID, limit)
	if err != nil {
		return nil, apperr.StoreFailure("list activities", err)
	}
	return activities, nil
}

// Stats aggregates every activity of userID. It scans the full ledger for
// the user on each call.
func (l *Ledger) Stats(ctx context.Context, userID string) (models.RecyclingStats, error) {
	activities, err := l.store.ListActivities(ctx, userID, 0)
	if err != nil {
		return models.RecyclingStats{}, apperr.StoreFailure("list activities", err)
	}
	return Aggregate(activities), nil
}

// Aggregate sums activities into totals and per-material counts.
func Aggregate(activities []models.RecyclingActivity) models.RecyclingStats {
	stats := models.RecyclingStats{ByMaterial: map[string]models.MaterialStats{}}
	for _, a := range activities {
		stats.TotalActivities++
		stats.TotalPoints += a.PointsEarned

		m := stats.ByMaterial[a.Material]
		m.Count++
		m.Quantity += a.Quantity
		stats.ByMaterial[a.Material] = m
	}
	return stats
}
