// Package common defines shared constants and sentinel errors used across
// client and server layers of clipstream. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Upload issuance errors.
	ErrMissingFileName      = errors.New("fileName is required")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMisconfigured        = errors.New("storage backend is not configured")

	// Batch-level errors.
	ErrBatchFull = errors.New("max 20 files")
	ErrBatchBusy = errors.New("batch transfer in progress")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Registration errors.
	ErrLoginAlreadyExists = errors.New("login already exists")
)
