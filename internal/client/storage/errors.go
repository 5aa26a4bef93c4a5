package storage

import "errors"

// Common client storage errors
var (
	// ErrCaseNotFound indicates that case was not found in local store
	ErrCaseNotFound = errors.New("case not found")

	// ErrSessionNotFound indicates that no authentication session exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
