// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rewards serves the rewards catalog and the redemption workflow.

Redeem checks the balance and debits it in one conditional update inside a
store transaction, together with the insert of the pending redemption. Two
concurrent redemptions that together exceed the balance cannot both succeed.

The catalog is read-only over HTTP. Operators load it at start-up from a
YAML file with LoadCatalog and Engine.SeedCatalog.
*/
package rewards
