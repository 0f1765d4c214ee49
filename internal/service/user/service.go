package user

import (
	"context"
	"errors"
)

var (
	ErrAPIKeyNotFound = errors.New("API key not found")
	ErrAPIKeyRevoked  = errors.New("API key has been revoked")
	ErrUserNotFound   = errors.New("user not found")
)

type ValidatedUser struct {
	UserID   string
	APIKeyID int64
}

type Service interface {
	// ValidateAPIKey validates an API key and returns the associated user.
	// Returns ErrAPIKeyNotFound if the key doesn't exist or
	// ErrAPIKeyRevoked if the key has been revoked.
	ValidateAPIKey(ctx context.Context, apiKey string) (*ValidatedUser, error)

	// GetOrCreateUser retrieves an existing user or creates a new one
	// with an API key. For new users, returns the plaintext API key
	// (only time it's available). For existing users, apiKey is empty.
	GetOrCreateUser(ctx context.Context, userID string) (apiKey string, err error)

	// UpdateAPIKeyLastUsed updates the last_used_at timestamp for an
	// API key, typically called asynchronously after validation.
	UpdateAPIKeyLastUsed(ctx context.Context, apiKeyID int64) error
}
