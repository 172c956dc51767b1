package creditlens

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, method, path string, body, result interface{}) error {
	args := m.Called(ctx, method, path, body, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if result != nil {
			if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
				return err
			}
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(authHeader string) {
	m.Called(authHeader)
}

// MockTokenSource is a mock implementation of the TokenSource interface
type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// newTestClient wires a client around mock transports with a fixed clock
func newTestClient(cards, bureau Transport, tokens TokenSource, now time.Time) *Client {
	c := &Client{
		cards:        cards,
		bureau:       bureau,
		bureauTokens: tokens,
		options: &ClientOptions{
			CardsClientID:  "test-client-id",
			CardsSecret:    "test-secret",
			BureauClientID: "test-subscriber",
		},
		now: func() time.Time { return now },
	}
	c.cache = newResponseCache(-1, c.nowFunc())
	c.initServices()
	return c
}
