// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rewards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/ecocondor/apperr"
	"github.com/danielhkuo/ecocondor/metrics"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/store"
)

// Store is the subset of the record store the rewards engine needs.
type Store interface {
	GetUser(ctx context.Context, uid string) (models.UserProfile, error)
	ListRewards(ctx context.Context, availableOnly bool) ([]models.Reward, error)
	GetReward(ctx context.Context, id string) (models.Reward, error)
	UpsertReward(ctx context.Context, r models.Reward) error
	Redeem(ctx context.Context, red models.Redemption) (models.Redemption, int64, error)
	ListRedemptions(ctx context.Context, userID string) ([]models.Redemption, error)
}

// Engine serves the rewards catalog and exchanges points for rewards.
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(s Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// List returns the available rewards, cheapest first.
func (e *Engine) List(ctx context.Context) ([]models.Reward, error) {
	rewards, err := e.store.ListRewards(ctx, true)
	if err != nil {
		return nil, apperr.StoreFailure("list rewards", err)
	}
	return rewards, nil
}

// Points returns the balance and lifetime recycled count of userID.
func (e *Engine) Points(ctx context.Context, userID string) (models.PointsBalance, error) {
	p, err := e.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.PointsBalance{}, apperr.NotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.PointsBalance{}, apperr.StoreFailure("get user", err)
	}
	return models.PointsBalance{Points: p.Points, TotalRecycled: p.TotalRecycled}, nil
}

// Redeem debits the reward's cost from userID and records a pending
// redemption. The balance check and the debit are a single conditional
// update, so the balance never goes negative under concurrent redemptions.
//
// Rewards marked unavailable can still be redeemed by id; availability only
// filters the listing.
func (e *Engine) Redeem(ctx context.Context, userID string, req models.RedeemRequest) (models.RedemptionResult, string, error) {
	rewardID := strings.TrimSpace(req.RewardID)
	if rewardID == "" {
		return models.RedemptionResult{}, "", apperr.InvalidArgument("rewardId es requerido")
	}

	reward, err := e.store.GetReward(ctx, rewardID)
	if errors.Is(err, store.ErrNotFound) {
		metrics.RedemptionAttempted(metrics.OutcomeNotFound, 0)
		return models.RedemptionResult{}, "", apperr.NotFound("Recompensa no encontrada")
	}
	if err != nil {
		metrics.RedemptionAttempted(metrics.OutcomeError, 0)
		return models.RedemptionResult{}, "", apperr.StoreFailure("get reward", err)
	}

	red, remaining, err := e.store.Redeem(ctx, models.Redemption{
		UserID:      userID,
		RewardID:    reward.ID,
		RewardName:  reward.Name,
		PointsSpent: reward.PointsCost,
		Status:      models.RedemptionPending,
		CreatedAt:   e.now(),
	})
	switch {
	case errors.Is(err, store.ErrInsufficientPoints):
		metrics.RedemptionAttempted(metrics.OutcomeInsufficient, 0)
		return models.RedemptionResult{}, "", apperr.InsufficientBalance(
			fmt.Sprintf("Puntos insuficientes. Necesitas %d puntos.", reward.PointsCost))
	case errors.Is(err, store.ErrNotFound):
		metrics.RedemptionAttempted(metrics.OutcomeNotFound, 0)
		return models.RedemptionResult{}, "", apperr.NotFound("Usuario no encontrado")
	case err != nil:
		metrics.RedemptionAttempted(metrics.OutcomeError, 0)
		return models.RedemptionResult{}, "", apperr.StoreFailure("redeem", err)
	}

	metrics.RedemptionAttempted(metrics.OutcomeRedeemed, red.PointsSpent)
	slog.Info("reward redeemed",
		"user_id", userID,
		"reward_id", reward.ID,
		"redemption_id", red.ID,
		"points_spent", red.PointsSpent,
		"remaining", remaining,
	)

	msg := fmt.Sprintf("¡Canjeaste \"%s\" exitosamente!", reward.Name)
	return models.RedemptionResult{Redemption: red, RemainingPoints: remaining}, msg, nil
}

// MyRedemptions returns every redemption of userID, newest first.
func (e *Engine) MyRedemptions(ctx context.Context, userID string) ([]models.Redemption, error) {
	redemptions, err := e.store.ListRedemptions(ctx, userID)
	if err != nil {
		return nil, apperr.StoreFailure("list redemptions", err)
	}
	return redemptions, nil
}

// SeedCatalog upserts rewards by id. Rewards not in the list are left alone.
func (e *Engine) SeedCatalog(ctx context.Context, rewards []models.Reward) error {
	for _, r := range rewards {
		if err := e.store.UpsertReward(ctx, r); err != nil {
			return fmt.Errorf("seeding reward %q: %w", r.ID, err)
		}
	}
	slog.Info("reward catalog seeded", "count", len(rewards))
	return nil
}
