package types

import (
	"errors"
	"time"
)

const (
	// DefaultCardsBaseURL is the sandbox base URL for the card/transaction provider
	DefaultCardsBaseURL = "https://sandbox.plaid.com"

	// DefaultCardsProductionURL is the production base URL for the card/transaction provider
	DefaultCardsProductionURL = "https://production.plaid.com"

	// DefaultBureauBaseURL is the sandbox base URL for the credit bureau
	DefaultBureauBaseURL = "https://sandbox-us-api.experian.com"

	// DefaultBureauProductionURL is the production base URL for the credit bureau
	DefaultBureauProductionURL = "https://us-api.experian.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "creditlens-go/1.0.0"
)

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired is returned when a provider token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
