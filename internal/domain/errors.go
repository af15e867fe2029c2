// Package domain holds the error taxonomy shared by the birthday domain packages.
package domain

import "errors"

var (
	// ErrAlreadyRegistered is returned when a chat binding or a user's birthday already exists.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrUnknownCommunity is returned when a chat has no notification binding.
	ErrUnknownCommunity = errors.New("community is not registered")
	// ErrNotFound is returned when a birthday registration does not exist.
	ErrNotFound = errors.New("registration not found")
	// ErrInvalidDate signals a day or month outside the accepted ranges.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidArgument signals a malformed identifier.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPageOutOfRange signals a listing page past the end of the result set.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrEmptyResult signals a listing with no registrations at all.
	ErrEmptyResult = errors.New("no registrations found")
	// ErrDeliveryFailed wraps notification sink failures. They are retried on the next tick.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	// ErrStorageFailure wraps database errors that are not domain conditions.
	ErrStorageFailure = errors.New("storage failure")
)
