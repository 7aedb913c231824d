// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterUserRequest: uid, email, displayName
  - UpdateProfileRequest: displayName
  - RegisterActivityRequest: material, quantity, unit, location
  - RedeemRequest: rewardId

# Response Types

Every endpoint answers with an envelope:

	{"success": true, "message": "...", "data": ...}
	{"success": false, "error": "..."}

Response carries the success shape and ErrorResponse the failure shape.
HealthResponse and RootResponse describe the service itself.

# Domain Types

  - Identity: verified caller (uid, email, emailVerified)
  - UserProfile: points balance and lifetime recycled count
  - RecyclingActivity: immutable ledger entry with points earned
  - RecyclingStats / MaterialStats: per-user aggregation
  - Reward: catalog entry with pointsCost
  - Redemption / RedemptionResult: immutable redemption record and remaining balance
  - PointsBalance: points and totalRecycled
*/
package models
