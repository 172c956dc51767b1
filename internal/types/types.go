package types

import (
	"context"
	"net/http"
	"time"
)

// Token represents a bearer token obtained from a provider
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Valid reports whether the token exists and has not expired
func (t *Token) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || now.Before(t.ExpiresAt)
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries int           `json:"maxRetries"`
	RetryWait  time.Duration `json:"retryWait"`
	MaxWait    time.Duration `json:"maxWait"`
}

// Hooks provides lifecycle hooks for requests
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, err error)
}
