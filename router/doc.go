// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the EcoCondor API.

# Route Registration

NewRouter returns a chi router with every endpoint mounted:

	handler := router.NewRouter(conn, verifier, cfg)

# Endpoints

Service:

	GET /            - API descriptor
	GET /api/health  - Liveness plus database ping (503 when unreachable)
	GET /metrics     - Prometheus exposition

Profiles:

	POST /api/auth/register - Create or overwrite a profile (public)
	GET  /api/auth/profile  - Caller's profile (auth)
	PUT  /api/auth/profile  - Update display name (auth)

Recycling:

	GET  /api/recycling/materials - Points table (public)
	POST /api/recycling/register  - Log an activity and earn points (auth)
	GET  /api/recycling/history   - Caller's activities, newest first; ?limit=N, default 20, max 100 (auth)
	GET  /api/recycling/stats     - Totals and per-material breakdown (auth)

Rewards:

	GET  /api/rewards                - Available rewards, cheapest first (public)
	GET  /api/rewards/points         - Caller's balance (auth)
	POST /api/rewards/redeem         - Exchange points for a reward (auth)
	GET  /api/rewards/my-redemptions - Caller's redemptions (auth)

Routes marked auth require "Authorization: Bearer <token>". Requests without
a valid token are rejected before any store access.

# Middleware

Every request passes through request id, real ip, logging, panic recovery,
CORS, metrics and the request timeout, in that order. Unknown routes answer
404 {"success":false,"error":"Endpoint no encontrado"}.
*/
package router
