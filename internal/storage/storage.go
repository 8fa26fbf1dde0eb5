package storage

import (
	"context"
	"errors"
)

// Well-known keys persisted by the client. All values are plain strings;
// counters and timestamps are stored in their decimal / RFC3339 encodings.
const (
	KeyAccessToken             = "accessToken"
	KeyRefreshToken            = "refreshToken"
	KeyCurrentUserID           = "currentUserId"
	KeyUserDataIntegrityError  = "userDataIntegrityError"
	KeyForceDataReset          = "forceDataReset"
	KeyLastRefreshAttempt      = "lastTokenRefreshAttempt"
	KeyLastRefreshSuccess      = "lastTokenRefreshSuccess"
	KeyLastRefreshFailure      = "lastTokenRefreshFailure"
	KeyTokenRefreshFailCount   = "tokenRefreshFailCount"
	KeyHasValidAuthentication  = "hasValidAuthentication"
	KeyUserDataIntegrityDetail = "userDataIntegrityDetail"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store provides device-local key-value persistence for session state.
// Implementations: SQLite (device), in-memory (tests, ephemeral use).
type Store interface {
	// Get retrieves the value for key. Returns ErrNotFound if absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetOrEmpty reads key and maps ErrNotFound to the empty string. Any other
// error is returned as-is.
func GetOrEmpty(ctx context.Context, s Store, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
