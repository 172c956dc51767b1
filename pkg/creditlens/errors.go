package creditlens

import (
	"errors"

	internalTypes "github.com/creditlens/creditlens-go/internal/types"
)

// Sentinel errors shared with the internal transport so errors.Is works
// across package boundaries
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrTokenExpired is returned when a provider token has expired
	ErrTokenExpired = internalTypes.ErrTokenExpired

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrNotFound is returned when resource not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrMissingAccessToken is returned when no provider access token was supplied
	ErrMissingAccessToken = errors.New("missing access token")

	// ErrMissingCredentials is returned when provider credentials are not configured
	ErrMissingCredentials = errors.New("provider credentials not configured")
)

// Error re-exports the structured API error type
type Error = internalTypes.Error

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrMissingAccessToken) ||
		errors.Is(err, ErrMissingCredentials)
}
