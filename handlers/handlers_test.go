// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/profile"
	"github.com/danielhkuo/ecocondor/recycling"
	"github.com/danielhkuo/ecocondor/rewards"
	"github.com/danielhkuo/ecocondor/store"
	"github.com/danielhkuo/ecocondor/testutil"
)

// serve runs h behind the auth gate with a token for uid.
func serve(t *testing.T, h http.HandlerFunc, req *http.Request, uid string) *httptest.ResponseRecorder {
	t.Helper()
	if uid != "" {
		req.Header.Set("Authorization", testutil.BearerToken(t, uid, uid+"@example.com"))
	}
	w := httptest.NewRecorder()
	middleware.RequireAuth(testutil.NewTestVerifier(t))(h).ServeHTTP(w, req)
	return w
}

func newHandlers(t *testing.T) (*AuthHandler, *RecyclingHandler, *RewardsHandler, *sqlx.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	s := store.New(conn)
	return NewAuthHandler(profile.NewManager(s)),
		NewRecyclingHandler(recycling.NewLedger(s)),
		NewRewardsHandler(rewards.NewEngine(s)),
		conn
}

func TestRegisterUser(t *testing.T) {
	authH, _, _, conn := newHandlers(t)

	t.Run("valid registration", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register", models.RegisterUserRequest{
			UID:   "u1",
			Email: "ana@example.com",
		}, nil)
		w := httptest.NewRecorder()
		authH.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp struct {
			Success bool               `json:"success"`
			Message string             `json:"message"`
			Data    models.UserProfile `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)

		if !resp.Success || resp.Message != "Usuario registrado exitosamente" {
			t.Errorf("Unexpected envelope: %+v", resp)
		}
		if resp.Data.DisplayName != "ana" || resp.Data.Points != 0 {
			t.Errorf("Unexpected profile: %+v", resp.Data)
		}
		if testutil.UserPoints(t, conn, "u1") != 0 {
			t.Error("Expected stored profile with zero points")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register", map[string]string{"uid": "u2"}, nil)
		w := httptest.NewRecorder()
		authH.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Error != "uid y email son requeridos" {
			t.Errorf("Unexpected error: %s", resp.Error)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader("{"))
		w := httptest.NewRecorder()
		authH.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestProfileEndpoints(t *testing.T) {
	authH, _, _, conn := newHandlers(t)

	w := serve(t, authH.GetProfile, testutil.MakeRequest("GET", "/api/auth/profile", nil, nil), "u1")
	testutil.AssertStatus(t, w, http.StatusNotFound)

	testutil.CreateTestUser(t, conn, "u1", "u1@example.com", 10)

	w = serve(t, authH.GetProfile, testutil.MakeRequest("GET", "/api/auth/profile", nil, nil), "u1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var got struct {
		Data models.UserProfile `json:"data"`
	}
	testutil.AssertJSON(t, w, &got)
	if got.Data.Points != 10 {
		t.Errorf("Expected 10 points, got %d", got.Data.Points)
	}

	req := testutil.MakeRequest("PUT", "/api/auth/profile", models.UpdateProfileRequest{DisplayName: "Ana"}, nil)
	w = serve(t, authH.UpdateProfile, req, "u1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var upd models.Response
	testutil.AssertJSON(t, w, &upd)
	if upd.Message != "Perfil actualizado" {
		t.Errorf("Unexpected message: %s", upd.Message)
	}

	req = testutil.MakeRequest("PUT", "/api/auth/profile", models.UpdateProfileRequest{DisplayName: "X"}, nil)
	w = serve(t, authH.UpdateProfile, req, "ghost")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestRecyclingEndpoints(t *testing.T) {
	_, recH, _, conn := newHandlers(t)
	testutil.CreateTestUser(t, conn, "u1", "u1@example.com", 0)

	testCases := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantPoints int64
	}{
		{"plastico", models.RegisterActivityRequest{Material: "plastico", Quantity: 10}, http.StatusCreated, 100},
		{"unknown material", models.RegisterActivityRequest{Material: "madera", Quantity: 2}, http.StatusCreated, 110},
		{"missing quantity", map[string]string{"material": "papel"}, http.StatusBadRequest, 110},
		{"missing material", map[string]float64{"quantity": 1}, http.StatusBadRequest, 110},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/recycling/register", tc.body, nil)
			w := serve(t, recH.RegisterActivity, req, "u1")
			testutil.AssertStatus(t, w, tc.wantStatus)

			if got := testutil.UserPoints(t, conn, "u1"); got != tc.wantPoints {
				t.Errorf("Expected balance %d, got %d", tc.wantPoints, got)
			}
		})
	}

	t.Run("history with limit", func(t *testing.T) {
		w := serve(t, recH.GetHistory, testutil.MakeRequest("GET", "/api/recycling/history?limit=1", nil, nil), "u1")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data []models.RecyclingActivity `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Data) != 1 || resp.Data[0].Material != "madera" {
			t.Errorf("Expected the newest activity only, got %+v", resp.Data)
		}
	})

	t.Run("history with bad limit", func(t *testing.T) {
		w := serve(t, recH.GetHistory, testutil.MakeRequest("GET", "/api/recycling/history?limit=abc", nil, nil), "u1")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data []models.RecyclingActivity `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Data) != 2 {
			t.Errorf("Expected 2 activities, got %d", len(resp.Data))
		}
	})

	t.Run("stats", func(t *testing.T) {
		w := serve(t, recH.GetStats, testutil.MakeRequest("GET", "/api/recycling/stats", nil, nil), "u1")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data models.RecyclingStats `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.TotalActivities != 2 || resp.Data.TotalPoints != 110 {
			t.Errorf("Unexpected stats: %+v", resp.Data)
		}
	})

	t.Run("materials", func(t *testing.T) {
		w := httptest.NewRecorder()
		recH.GetMaterials(w, testutil.MakeRequest("GET", "/api/recycling/materials", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data models.MaterialRates `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.DefaultRate != recycling.DefaultRate || len(resp.Data.Rates) == 0 {
			t.Errorf("Unexpected rates: %+v", resp.Data)
		}
	})
}

func TestRewardsEndpoints(t *testing.T) {
	_, _, rewH, conn := newHandlers(t)
	testutil.CreateTestUser(t, conn, "u1", "u1@example.com", 100)
	testutil.CreateTestReward(t, conn, "r1", "Bolsa", 60, true)
	testutil.CreateTestReward(t, conn, "r2", "Gorra", 20, false)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		rewH.ListRewards(w, testutil.MakeRequest("GET", "/api/rewards", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data []models.Reward `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Data) != 1 || resp.Data[0].ID != "r1" {
			t.Errorf("Expected only the available reward, got %+v", resp.Data)
		}
	})

	redeem := func(rewardID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/rewards/redeem", models.RedeemRequest{RewardID: rewardID}, nil)
		return serve(t, rewH.Redeem, req, "u1")
	}

	t.Run("redeem", func(t *testing.T) {
		w := redeem("r1")
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp struct {
			Message string                  `json:"message"`
			Data    models.RedemptionResult `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.RemainingPoints != 40 || resp.Data.Status != models.RedemptionPending {
			t.Errorf("Unexpected redemption: %+v", resp.Data)
		}
		if resp.Message != `¡Canjeaste "Bolsa" exitosamente!` {
			t.Errorf("Unexpected message: %s", resp.Message)
		}
	})

	errorCases := []struct {
		name       string
		rewardID   string
		wantStatus int
		wantError  string
	}{
		{"insufficient", "r1", http.StatusBadRequest, "Puntos insuficientes. Necesitas 60 puntos."},
		{"unknown reward", "zzz", http.StatusNotFound, "Recompensa no encontrada"},
		{"missing reward id", "", http.StatusBadRequest, "rewardId es requerido"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			w := redeem(tc.rewardID)
			testutil.AssertStatus(t, w, tc.wantStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Success || resp.Error != tc.wantError {
				t.Errorf("Unexpected error response: %+v", resp)
			}
		})
	}

	t.Run("points", func(t *testing.T) {
		w := serve(t, rewH.GetPoints, testutil.MakeRequest("GET", "/api/rewards/points", nil, nil), "u1")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data models.PointsBalance `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.Points != 40 {
			t.Errorf("Expected 40 points, got %d", resp.Data.Points)
		}

		w = serve(t, rewH.GetPoints, testutil.MakeRequest("GET", "/api/rewards/points", nil, nil), "ghost")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("my redemptions", func(t *testing.T) {
		w := serve(t, rewH.MyRedemptions, testutil.MakeRequest("GET", "/api/rewards/my-redemptions", nil, nil), "u1")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Data []models.Redemption `json:"data"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Data) != 1 || resp.Data[0].RewardID != "r1" {
			t.Errorf("Unexpected redemptions: %+v", resp.Data)
		}
	})
}

func TestHandlersWithoutIdentity(t *testing.T) {
	authH, recH, rewH, _ := newHandlers(t)

	for name, h := range map[string]http.HandlerFunc{
		"profile": authH.GetProfile,
		"history": recH.GetHistory,
		"points":  rewH.GetPoints,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h(w, testutil.MakeRequest("GET", "/", nil, nil))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}
