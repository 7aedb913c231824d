// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package profile manages user profiles: registration, lookup and display
// name updates. Balances are never written here after registration; the
// recycling ledger and the rewards engine own them.
package profile
