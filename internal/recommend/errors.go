// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	// KindCollaboratorUnavailable means a catalog or order fetch failed.
	KindCollaboratorUnavailable ErrorKind = "collaborator_unavailable"
	// KindComputation means the pipeline hit unexpected data or a scorer failed.
	KindComputation ErrorKind = "computation"
	// KindCache means the cache misbehaved. Never fatal.
	KindCache ErrorKind = "cache"
)

// Sentinel errors matchable with errors.Is against any StageError of the
// same kind.
var (
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrComputation             = errors.New("computation error")
	ErrCache                   = errors.New("cache error")
)

// StageError is a failure inside one pipeline stage.
type StageError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *StageError) Is(target error) bool {
	switch target {
	case ErrCollaboratorUnavailable:
		return e.Kind == KindCollaboratorUnavailable
	case ErrComputation:
		return e.Kind == KindComputation
	case ErrCache:
		return e.Kind == KindCache
	default:
		return false
	}
}

// Retryable reports whether retrying the request may succeed.
func (e *StageError) Retryable() bool {
	return e.Kind == KindCollaboratorUnavailable
}

func collaboratorError(stage string, err error) *StageError {
	return &StageError{Kind: KindCollaboratorUnavailable, Stage: stage, Err: err}
}

func computationError(stage string, err error) *StageError {
	return &StageError{Kind: KindComputation, Stage: stage, Err: err}
}

// kindOf returns the kind of err, treating unknown errors as computation
// failures.
func kindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindComputation
}
