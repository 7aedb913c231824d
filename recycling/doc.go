// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package recycling implements the recycling ledger: the points table, activity
registration, history and per-user statistics.

Points earned are round(quantity × rate), with rate looked up by lower-cased
material name and DefaultRate for anything not in the table. Registration
appends the activity and credits the user's balance in one store
transaction. A user without a profile still gets the activity recorded; the
credit is skipped and the divergence is logged and counted in
ecocondor_ledger_uncredited_activities_total.
*/
package recycling
