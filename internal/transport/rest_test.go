package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creditlens/creditlens-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_DecodesJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/accounts/get", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("device-uuid"))

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(`{"accounts": [{"account_id": "acc-1", "name": "Visa"}]}`))
	}))
	defer server.Close()

	transport := NewRESTTransport(&Options{BaseURL: server.URL})

	var result struct {
		Accounts []struct {
			AccountID string `json:"account_id"`
			Name      string `json:"name"`
		} `json:"accounts"`
	}

	err := transport.Do(context.Background(), "POST", "/accounts/get", map[string]string{"access_token": "tok"}, &result)

	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "acc-1", result.Accounts[0].AccountID)
	assert.Equal(t, "Visa", result.Accounts[0].Name)
}

func TestDo_SetsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	transport := NewRESTTransport(&Options{BaseURL: server.URL})
	transport.SetAuth("Bearer test-token")

	err := transport.Do(context.Background(), "POST", "/credit-report", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestDo_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{"401 unauthorized", http.StatusUnauthorized, types.ErrNotAuthenticated},
		{"403 forbidden", http.StatusForbidden, types.ErrNotAuthenticated},
		{"404 not found", http.StatusNotFound, types.ErrNotFound},
		{"429 rate limited", http.StatusTooManyRequests, types.ErrRateLimited},
		{"504 gateway timeout", http.StatusGatewayTimeout, types.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			transport := NewRESTTransport(&Options{BaseURL: server.URL})
			err := transport.Do(context.Background(), "GET", "/", nil, nil)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestHandleHTTPError_BadRequest_ParsesProviderError(t *testing.T) {
	transport := &RESTTransport{}

	err := transport.handleHTTPError(http.StatusBadRequest, []byte(`{
		"error_type": "INVALID_REQUEST",
		"error_code": "INVALID_ACCESS_TOKEN",
		"error_message": "could not find matching access token",
		"request_id": "req-123"
	}`))

	require.Error(t, err)
	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	assert.Equal(t, "could not find matching access token", apiErr.Message)
	assert.Equal(t, "req-123", apiErr.RequestID)
}

func TestHandleHTTPError_ServerError_IncludesStatusCodeDescription(t *testing.T) {
	transport := &RESTTransport{}

	tests := []struct {
		name         string
		statusCode   int
		expectedDesc string
	}{
		{"500 Internal Server Error", 500, "Internal Server Error"},
		{"502 Bad Gateway", 502, "Bad Gateway"},
		{"503 Service Unavailable", 503, "Service Unavailable"},
		{"525 SSL Handshake Failed", 525, "SSL Handshake Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transport.handleHTTPError(tt.statusCode, []byte(`error page`))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedDesc, "error should include human-readable description")
			assert.ErrorIs(t, err, types.ErrServerError)
		})
	}
}
