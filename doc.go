// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the EcoCondor API server.

EcoCondor is the backend of a recycling-rewards app: users log what they
recycle, earn points per kilogram or unit, and exchange points for rewards.

# Starting the Server

The server needs a token verification key; everything else has a default:

	AUTH_TOKEN_SECRET=... go run .

Or with flags, against PostgreSQL:

	go run . -p 3000 -t postgres -d "postgres://..." -token-secret ...

Settings may also come from a .env file; see package cliparse.

# Start-up

  - Open the database (SQLite or PostgreSQL) and create the schema
  - Seed the reward catalog when REWARDS_FILE is set
  - Build the token verifier (HS256 secret and/or RS256 public key)
  - Serve until SIGINT/SIGTERM, then drain for up to 10s

# Architecture

  - handlers: HTTP request handlers (auth, recycling, rewards, health)
  - router: chi routes and middleware chain
  - middleware: auth gate, logging, recovery, CORS, JSON helpers
  - profile, recycling, rewards: domain services
  - store: SQL record store (sqlx)
  - db: connection and schema
  - auth: bearer token verification
  - apperr: error taxonomy and HTTP status mapping
  - metrics: Prometheus collectors
  - models: request/response and domain types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
