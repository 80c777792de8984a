// Package services defines the business logic for chat answering, history
// retrieval, and FAQ administration. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrEmptyMessage is returned when a chat request carries an empty (or
	// whitespace-only) user message.
	ErrEmptyMessage = errors.New("user message is empty")

	// ErrUpstreamUnavailable indicates that the completion service failed for
	// any reason (network, auth, malformed response, empty choice list). The
	// failure is terminal for the request; it is never retried and no history
	// row is written.
	ErrUpstreamUnavailable = errors.New("completion service unavailable")

	// ErrDuplicateFAQ is returned when an add-FAQ request collides with an
	// existing question under case-insensitive comparison. This is expected
	// client behavior, not a fault.
	ErrDuplicateFAQ = errors.New("FAQ already exists")

	// ErrMissingFields is returned when an add-FAQ request omits the question
	// or the answer.
	ErrMissingFields = errors.New("question and answer are required")
)
