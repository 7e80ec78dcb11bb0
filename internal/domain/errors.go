// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the request failed domain validation.
var ErrValidation = errors.New("validation failed")

// ErrRoutingLoop indicates a turn exceeded its handoff hop limit.
var ErrRoutingLoop = errors.New("routing loop: handoff hop limit exceeded")

// ErrTurnTimeout indicates a turn exceeded its wall-clock deadline.
var ErrTurnTimeout = errors.New("turn timed out")

// ErrTurnInProgress indicates a session already has an outstanding turn.
var ErrTurnInProgress = errors.New("a turn is already in progress for this session")
