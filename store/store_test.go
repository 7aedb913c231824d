// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/store"
	"github.com/danielhkuo/ecocondor/testutil"
)

func TestUserRoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	replaced, err := s.PutUser(ctx, models.UserProfile{
		UID: "u1", Email: "a@b.com", DisplayName: "a", CreatedAt: created,
	})
	require.NoError(t, err)
	assert.False(t, replaced)

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, int64(0), got.Points)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Nil(t, got.UpdatedAt)

	name := "Ana"
	updated := created.Add(time.Hour)
	require.NoError(t, s.UpdateUser(ctx, "u1", &name, updated))

	got, err = s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.DisplayName)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, updated.Equal(*got.UpdatedAt))

	replaced, err = s.PutUser(ctx, models.UserProfile{
		UID: "u1", Email: "new@b.com", DisplayName: "new", CreatedAt: updated,
	})
	require.NoError(t, err)
	assert.True(t, replaced)
}

func TestUserNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	_, err := s.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateUser(ctx, "ghost", nil, time.Now())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordActivityCreditsProfile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 5)

	a, credited, err := s.RecordActivity(ctx, models.RecyclingActivity{
		UserID: "u1", Material: "vidrio", Quantity: 2, Unit: "kg", PointsEarned: 16, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, credited)
	assert.NotEmpty(t, a.ID)

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(21), u.Points)
	assert.Equal(t, int64(1), u.TotalRecycled)
}

func TestRecordActivityWithoutProfile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	loc := "Punto Limpio Centro"
	a, credited, err := s.RecordActivity(ctx, models.RecyclingActivity{
		UserID: "nobody", Material: "papel", Quantity: 1, Unit: "kg", PointsEarned: 5,
		Location: &loc, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, credited)

	list, err := s.ListActivities(ctx, "nobody", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	require.NotNil(t, list[0].Location)
	assert.Equal(t, loc, *list[0].Location)
}

func TestListActivitiesOrderAndLimit(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, _, err := s.RecordActivity(ctx, models.RecyclingActivity{
			UserID: "u1", Material: "metal", Quantity: float64(i + 1), Unit: "kg",
			PointsEarned: 15, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, _, err := s.RecordActivity(ctx, models.RecyclingActivity{
		UserID: "u2", Material: "metal", Quantity: 1, Unit: "kg", PointsEarned: 15, CreatedAt: base,
	})
	require.NoError(t, err)

	list, err := s.ListActivities(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 5.0, list[0].Quantity)
	assert.Equal(t, 4.0, list[1].Quantity)
	assert.Equal(t, 3.0, list[2].Quantity)
	for _, a := range list {
		assert.Equal(t, "u1", a.UserID)
	}

	all, err := s.ListActivities(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	empty, err := s.ListActivities(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRewardsCatalog(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	require.NoError(t, s.UpsertReward(ctx, models.Reward{ID: "r3", Name: "Botella", PointsCost: 300, Available: true}))
	require.NoError(t, s.UpsertReward(ctx, models.Reward{ID: "r1", Name: "Bolsa", PointsCost: 100, Available: true}))
	require.NoError(t, s.UpsertReward(ctx, models.Reward{ID: "r2", Name: "Agotado", PointsCost: 50, Available: false}))

	available, err := s.ListRewards(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "r1", available[0].ID)
	assert.Equal(t, "r3", available[1].ID)

	all, err := s.ListRewards(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.UpsertReward(ctx, models.Reward{ID: "r2", Name: "Repuesto", PointsCost: 50, Available: true}))
	r, err := s.GetReward(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "Repuesto", r.Name)
	assert.True(t, r.Available)

	_, err = s.GetReward(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeem(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := store.New(conn)
	ctx := context.Background()

	testutil.CreateTestUser(t, conn, "u1", "a@b.com", 100)

	red := models.Redemption{
		UserID: "u1", RewardID: "r1", RewardName: "Bolsa", PointsSpent: 60,
		Status: models.RedemptionPending, CreatedAt: time.Now(),
	}

	got, remaining, err := s.Redeem(ctx, red)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, int64(40), remaining)
	assert.Equal(t, int64(40), testutil.UserPoints(t, conn, "u1"))

	_, _, err = s.Redeem(ctx, red)
	assert.ErrorIs(t, err, store.ErrInsufficientPoints)
	assert.Equal(t, int64(40), testutil.UserPoints(t, conn, "u1"))

	red.UserID = "ghost"
	_, _, err = s.Redeem(ctx, red)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListRedemptions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(60), list[0].PointsSpent)
	assert.Equal(t, models.RedemptionPending, list[0].Status)
}
