package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/creditlens/creditlens-go/internal/types"
	"github.com/pkg/errors"
)

const (
	tokenEndpoint = "/oauth2/v1/token"

	// expirySkew renews tokens this long before their reported expiry so a
	// request never goes out with a token about to lapse mid-flight
	expirySkew = 5 * time.Minute

	defaultExpiresIn = 3600
)

// Service obtains and caches OAuth2 client-credentials tokens for the
// credit bureau API. Safe for concurrent use.
type Service struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       types.Logger

	mu    sync.Mutex
	token *types.Token
	now   func() time.Time
}

// NewService creates a new token service
func NewService(baseURL, clientID, clientSecret string, httpClient *http.Client, logger types.Logger) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: types.DefaultTimeout}
	}
	return &Service{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		logger:       logger,
		now:          time.Now,
	}
}

// Token returns a valid access token, requesting a new one when the cached
// token is missing or within the expiry skew
func (s *Service) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.Valid(s.now()) {
		return s.token.AccessToken, nil
	}

	if err := s.refresh(ctx); err != nil {
		return "", err
	}

	return s.token.AccessToken, nil
}

// Invalidate discards the cached token, forcing a refresh on the next call
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

// refresh requests a new token. Caller must hold s.mu.
func (s *Service) refresh(ctx context.Context) error {
	if s.clientID == "" || s.clientSecret == "" {
		return types.ErrNotAuthenticated
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create token request")
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", types.UserAgent)

	if s.logger != nil {
		s.logger.Debug("Token request", "clientId", s.clientID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read token response")
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return types.ErrNotAuthenticated
		}
		return &types.Error{
			Code:       "TOKEN_REQUEST_FAILED",
			Message:    fmt.Sprintf("token request failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return errors.Wrap(err, "failed to parse token response")
	}

	if tokenResp.AccessToken == "" {
		return errors.New("no access token in response")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	s.token = &types.Token{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		ExpiresAt:   s.now().Add(time.Duration(expiresIn)*time.Second - expirySkew),
	}

	if s.logger != nil {
		s.logger.Info("Token acquired", "expiresAt", s.token.ExpiresAt)
	}

	return nil
}

// tokenResponse represents the OAuth token endpoint response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}
