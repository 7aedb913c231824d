// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus collectors for the API.

Mount the handler and wrap the router:

	r.Use(metrics.InstrumentHandler)
	r.Method("GET", "/metrics", metrics.Handler())

HTTP series are labelled by chi route pattern. Domain series:

  - ecocondor_ledger_activities_total{material}
  - ecocondor_ledger_points_awarded_total
  - ecocondor_ledger_uncredited_activities_total
  - ecocondor_rewards_redemptions_total{outcome}
  - ecocondor_rewards_points_spent_total

A rising uncredited_activities_total means activities are being logged for
users that never registered a profile; their balances will not match the
ledger.
*/
package metrics
