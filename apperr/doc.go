// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr classifies failures raised by the domain packages.

Kinds and their HTTP status:

	Unauthenticated      401
	InvalidArgument      400
	NotFound             404
	InsufficientBalance  400
	StoreFailure         500

Validation failures carry a precise client message:

	return apperr.InvalidArgument("rewardId es requerido")

Store failures wrap the cause so it can be logged, while the client only
sees a generic message chosen by the handler:

	return apperr.StoreFailure("load reward", err)
*/
package apperr
