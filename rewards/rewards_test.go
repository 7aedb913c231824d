// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rewards_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ecocondor/apperr"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/profile"
	"github.com/danielhkuo/ecocondor/recycling"
	"github.com/danielhkuo/ecocondor/rewards"
	"github.com/danielhkuo/ecocondor/store"
	"github.com/danielhkuo/ecocondor/testutil"
)

func setup(t *testing.T) (*rewards.Engine, *store.Store, *sqlx.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	s := store.New(conn)
	return rewards.NewEngine(s), s, conn
}

func TestRedeemScenario(t *testing.T) {
	engine, s, conn := setup(t)
	ctx := context.Background()

	_, err := profile.NewManager(s).Register(ctx, models.RegisterUserRequest{UID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	activity, _, err := recycling.NewLedger(s).Register(ctx, "u1", models.RegisterActivityRequest{Material: "plastico", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(100), activity.PointsEarned)
	assert.Equal(t, int64(100), testutil.UserPoints(t, conn, "u1"))

	testutil.CreateTestReward(t, conn, "r1", "Bolsa reutilizable", 60, true)

	result, msg, err := engine.Redeem(ctx, "u1", models.RedeemRequest{RewardID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, `¡Canjeaste "Bolsa reutilizable" exitosamente!`, msg)
	assert.Equal(t, int64(40), result.RemainingPoints)
	assert.Equal(t, int64(60), result.PointsSpent)
	assert.Equal(t, "Bolsa reutilizable", result.RewardName)
	assert.Equal(t, models.RedemptionPending, result.Status)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, int64(40), testutil.UserPoints(t, conn, "u1"))

	_, _, err = engine.Redeem(ctx, "u1", models.RedeemRequest{RewardID: "r1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))
	assert.Equal(t, "Puntos insuficientes. Necesitas 60 puntos.", apperr.Message(err))
	assert.Equal(t, int64(40), testutil.UserPoints(t, conn, "u1"))
	assert.Equal(t, 1, testutil.CountRows(t, conn, "redemptions", "u1"))
}

func TestRedeemErrors(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 500)
	testutil.CreateTestReward(t, conn, "r1", "Taza", 50, true)

	tests := []struct {
		name    string
		userID  string
		reward  string
		kind    apperr.Kind
		message string
	}{
		{"missing reward id", "u1", "", apperr.KindInvalidArgument, "rewardId es requerido"},
		{"unknown reward", "u1", "nope", apperr.KindNotFound, "Recompensa no encontrada"},
		{"no profile", "ghost", "r1", apperr.KindNotFound, "Usuario no encontrado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.Redeem(context.Background(), tt.userID, models.RedeemRequest{RewardID: tt.reward})
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Equal(t, tt.message, apperr.Message(err))
		})
	}

	assert.Equal(t, int64(500), testutil.UserPoints(t, conn, "u1"))
	assert.Equal(t, 0, testutil.CountRows(t, conn, "redemptions", "ghost"))
}

func TestConcurrentRedemptionsCannotOverspend(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 100)
	testutil.CreateTestReward(t, conn, "r1", "Entrada de cine", 30, true)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := engine.Redeem(context.Background(), "u1", models.RedeemRequest{RewardID: "r1"})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, int64(10), testutil.UserPoints(t, conn, "u1"))
	assert.Equal(t, 3, testutil.CountRows(t, conn, "redemptions", "u1"))
}

func TestListOnlyAvailable(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestReward(t, conn, "caro", "Bicicleta", 5000, true)
	testutil.CreateTestReward(t, conn, "agotado", "Gorra", 80, false)
	testutil.CreateTestReward(t, conn, "barato", "Sticker", 10, true)

	list, err := engine.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "barato", list[0].ID)
	assert.Equal(t, "caro", list[1].ID)
}

func TestRedeemIgnoresAvailability(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 100)
	testutil.CreateTestReward(t, conn, "agotado", "Gorra", 80, false)

	result, _, err := engine.Redeem(context.Background(), "u1", models.RedeemRequest{RewardID: "agotado"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), result.RemainingPoints)
}

func TestPoints(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 75)

	balance, err := engine.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PointsBalance{Points: 75, TotalRecycled: 0}, balance)

	_, err = engine.Points(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Usuario no encontrado", apperr.Message(err))
}

func TestMyRedemptions(t *testing.T) {
	engine, _, conn := setup(t)
	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 100)
	testutil.CreateTestReward(t, conn, "r1", "Sticker", 10, true)

	empty, err := engine.MyRedemptions(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 0; i < 2; i++ {
		_, _, err := engine.Redeem(context.Background(), "u1", models.RedeemRequest{RewardID: "r1"})
		require.NoError(t, err)
	}

	list, err := engine.MyRedemptions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt), "newest first")
	for _, r := range list {
		assert.Equal(t, "u1", r.UserID)
	}
}

func TestSeedCatalogUpserts(t *testing.T) {
	engine, s, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, engine.SeedCatalog(ctx, []models.Reward{
		{ID: "r1", Name: "Sticker", PointsCost: 10, Available: true},
	}))
	require.NoError(t, engine.SeedCatalog(ctx, []models.Reward{
		{ID: "r1", Name: "Sticker grande", PointsCost: 15, Available: true},
	}))

	r, err := s.GetReward(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Sticker grande", r.Name)
	assert.Equal(t, int64(15), r.PointsCost)
}
