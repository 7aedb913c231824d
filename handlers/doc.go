// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers of the EcoCondor API.

Each handler group wraps one domain service:

  - AuthHandler: profile registration, lookup and update (profile.Manager)
  - RecyclingHandler: activity registration, history, stats, points table (recycling.Ledger)
  - RewardsHandler: catalog, balance, redemption (rewards.Engine)
  - HealthHandler: root descriptor and health check

Handlers behind the auth gate read the caller with middleware.IdentityFrom.
Successful responses use the {success, message, data} envelope. Domain
errors map to their status with their own message; store failures are
logged and answered 500 with a per-route message.
*/
package handlers
