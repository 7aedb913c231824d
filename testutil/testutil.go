// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/ecocondor/auth"
	"github.com/danielhkuo/ecocondor/cliparse"
	"github.com/danielhkuo/ecocondor/db"
	"github.com/danielhkuo/ecocondor/models"
)

// TestTokenSecret signs every token minted by BearerToken
const TestTokenSecret = "test-token-secret"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		DatabaseType:   db.TypeSQLite,
		DatabaseURL:    ":memory:",
		TokenSecret:    TestTokenSecret,
		RequestTimeout: 5 * time.Second,
		Env:            "test",
		LogLevel:       "info",
	}
}

// NewTestVerifier returns a verifier accepting BearerToken tokens
func NewTestVerifier(t *testing.T) auth.Verifier {
	t.Helper()

	v, err := auth.NewJWTVerifier(auth.VerifierConfig{Secret: TestTokenSecret})
	if err != nil {
		t.Fatalf("Failed to create verifier: %v", err)
	}
	return v
}

// BearerToken mints a valid token for uid and returns the Authorization header value
func BearerToken(t *testing.T, uid, email string) string {
	t.Helper()

	token, err := auth.NewSigner(TestTokenSecret, "", "").Sign(models.Identity{
		UID:           uid,
		Email:         email,
		EmailVerified: true,
	}, time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return "Bearer " + token
}

// CreateTestUser inserts a profile with the given balance
func CreateTestUser(t *testing.T, conn *sqlx.DB, uid, email string, points int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO users (uid, email, display_name, points, total_recycled, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, uid, email, uid, points, db.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestReward inserts a catalog entry
func CreateTestReward(t *testing.T, conn *sqlx.DB, id, name string, cost int64, available bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO rewards (id, name, description, points_cost, available)
		VALUES (?, ?, '', ?, ?)
	`, id, name, cost, available)
	if err != nil {
		t.Fatalf("Failed to create test reward: %v", err)
	}
}

// UserPoints reads the stored balance of uid
func UserPoints(t *testing.T, conn *sqlx.DB, uid string) int64 {
	t.Helper()

	var points int64
	if err := conn.Get(&points, `SELECT points FROM users WHERE uid = ?`, uid); err != nil {
		t.Fatalf("Failed to read points: %v", err)
	}
	return points
}

// CountRows returns the number of rows in table matching user_id
func CountRows(t *testing.T, conn *sqlx.DB, table, userID string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM `+table+` WHERE user_id = ?`, userID); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
