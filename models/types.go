package models

import "time"

// Redemption status constants
const (
	RedemptionPending = "pending"
)

// DefaultUnit is recorded when an activity is registered without a unit.
const DefaultUnit = "kg"

// Identity is the verified caller attached to the request context by the auth gate.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// Request types

type RegisterUserRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
}

type RegisterActivityRequest struct {
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

type RedeemRequest struct {
	RewardID string `json:"rewardId"`
}

// Domain types

type UserProfile struct {
	UID           string     `json:"uid"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"displayName"`
	Points        int64      `json:"points"`
	TotalRecycled int64      `json:"totalRecycled"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type RecyclingActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Material     string    `json:"material"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PointsEarned int64     `json:"pointsEarned"`
	Location     *string   `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MaterialStats aggregates one material within RecyclingStats.
type MaterialStats struct {
	Count    int     `json:"count"`
	Quantity float64 `json:"quantity"`
}

type RecyclingStats struct {
	TotalActivities int                      `json:"totalActivities"`
	TotalPoints     int64                    `json:"totalPoints"`
	ByMaterial      map[string]MaterialStats `json:"byMaterial"`
}

// MaterialRate is one row of the public points table.
type MaterialRate struct {
	Material      string `json:"material"`
	PointsPerUnit int64  `json:"pointsPerUnit"`
}

type MaterialRates struct {
	Rates       []MaterialRate `json:"rates"`
	DefaultRate int64          `json:"defaultRate"`
}

type Reward struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	PointsCost  int64  `json:"pointsCost" db:"points_cost"`
	Available   bool   `json:"available" db:"available"`
}

type Redemption struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	RewardID    string    `json:"rewardId"`
	RewardName  string    `json:"rewardName"`
	PointsSpent int64     `json:"pointsSpent"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RedemptionResult is a completed redemption plus the balance left after it.
type RedemptionResult struct {
	Redemption
	RemainingPoints int64 `json:"remainingPoints"`
}

type PointsBalance struct {
	Points        int64 `json:"points"`
	TotalRecycled int64 `json:"totalRecycled"`
}

// Response types

// Response is the envelope every successful endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type RootResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
