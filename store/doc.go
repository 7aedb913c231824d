// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the record store behind every endpoint.

It offers keyed reads and writes per collection plus filtered, ordered
listings:

	users                 PutUser, GetUser, UpdateUser
	recycling_activities  RecordActivity, ListActivities
	rewards               ListRewards, GetReward, UpsertReward
	redemptions           Redeem, ListRedemptions

Record ids are assigned by the store (UUIDv4). Queries are written with ?
placeholders and rebound by sqlx for PostgreSQL.

# Balance Updates

Balances are never read and written back in separate steps. RecordActivity inserts
the activity and increments the balance in one transaction; Redeem runs a
conditional decrement

	UPDATE users SET points = points - cost WHERE uid = ? AND points >= cost

and appends the redemption in the same transaction, so two concurrent
redemptions cannot both spend the same points.

# Errors

  - ErrNotFound: no record at the requested key
  - ErrInsufficientPoints: Redeem found a balance below the cost

Other errors are driver failures wrapped with the operation that failed.
*/
package store
