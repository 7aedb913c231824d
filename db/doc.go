// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open selects the driver from the configured type:

	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")
	conn, err := db.Open(ctx, db.TypeSQLite, "file:ecocondor.db")

PostgreSQL uses github.com/lib/pq, SQLite uses modernc.org/sqlite. SQLite
connections are limited to one so writes never contend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: profile, points balance, lifetime recycled count
  - recycling_activities: append-only recycling ledger
  - rewards: redeemable catalog
  - redemptions: append-only redemption log

Activities and redemptions reference users by uid without a foreign key;
an activity may be recorded for a uid that has no profile.

# Indexes

  - recycling_activities.(user_id, created_at)
  - redemptions.(user_id, created_at)
  - rewards.(available, points_cost)
*/
package db
