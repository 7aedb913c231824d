// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindInvalidArgument
	KindNotFound
	KindInsufficientBalance
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindStoreFailure:
		return "store_failure"
	}
	return "unknown"
}

// Error is a classified failure. Message is safe to show to clients;
// Err holds the underlying cause, if any, and is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InsufficientBalance(msg string) error {
	return &Error{Kind: KindInsufficientBalance, Message: msg}
}

// StoreFailure wraps a record store error. The message describes the
// operation that failed, not the cause.
func StoreFailure(op string, err error) error {
	return &Error{Kind: KindStoreFailure, Message: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-safe message of err, or "" when err is not
// classified or is a store failure.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStoreFailure {
		return e.Message
	}
	return ""
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(k Kind) int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidArgument, KindInsufficientBalance:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
