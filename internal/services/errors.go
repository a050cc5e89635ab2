// Package services defines the business logic of the panel: the in-memory
// settings store and the idempotency ledger wrapper.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrInvalidInput is returned when a request payload is malformed JSON or
	// null. No state is mutated when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCommandNotFound indicates that no command matches the requested key.
	ErrCommandNotFound = errors.New("command not found")
)
