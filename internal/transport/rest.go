package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/creditlens/creditlens-go/internal/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// RESTTransport handles JSON-over-HTTP communication with a provider API
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	authHeader  string
	logger      types.Logger
	hooks       *types.Hooks
}

// Options configures a transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":       contentType,
		"Content-Type": contentType,
		"User-Agent":   types.UserAgent,
		"device-uuid":  uuid.New().String(),
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Do sends a JSON request to path and decodes the JSON response into result.
// A nil body sends an empty request; a nil result discards the response body.
func (t *RESTTransport) Do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		reader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	// Set headers
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}

	if t.authHeader != "" {
		httpReq.Header.Set(authHeaderKey, t.authHeader)
	}

	// Call request hook
	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	// Log request
	if t.logger != nil {
		t.logger.Debug("API request", "method", method, "path", path)
	}

	// Execute request
	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	// Call response hook
	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	// Log response
	if t.logger != nil {
		t.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	// Check status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return t.handleHTTPError(resp.StatusCode, respBody)
	}

	// Unmarshal response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// SetAuth sets the Authorization header value used on every request,
// e.g. "Bearer <token>" or "Basic <credentials>"
func (t *RESTTransport) SetAuth(authHeader string) {
	t.authHeader = authHeader
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		// Convert to retryable request
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// handleHTTPError handles HTTP errors
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	// Try to parse a provider error body
	var provErr types.ProviderError
	_ = json.Unmarshal(body, &provErr)

	// Map status codes to errors
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return types.ErrNotAuthenticated
	case http.StatusNotFound:
		return types.ErrNotFound
	case http.StatusTooManyRequests:
		return types.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return types.ErrTimeout
	case http.StatusBadRequest:
		msg := provErr.ErrorMessage
		if msg == "" {
			msg = provErr.ErrorCode
		}
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
			RequestID:  provErr.RequestID,
		}
	default:
		if statusCode >= 500 {
			baseMsg := fmt.Sprintf("server error: %d", statusCode)
			if desc := httpStatusDescription(statusCode); desc != "" {
				baseMsg = fmt.Sprintf("server error: %d (%s)", statusCode, desc)
			}
			if provErr.ErrorMessage != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, provErr.ErrorMessage)
			}
			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("HTTP error: %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// httpStatusDescription returns a human-readable description for common HTTP status codes.
// This helps users understand errors like 525 (SSL Handshake Failed) which are Cloudflare-specific.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
		527: "Railgun Error",
		530: "Origin DNS Error",
	}
	return descriptions[statusCode]
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
