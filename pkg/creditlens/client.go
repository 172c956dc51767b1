package creditlens

import (
	"context"
	"net/http"
	"time"

	"github.com/creditlens/creditlens-go/internal/auth"
	"github.com/creditlens/creditlens-go/internal/transport"
	internalTypes "github.com/creditlens/creditlens-go/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL bounds how long a provider response is reused
	DefaultCacheTTL = 5 * time.Minute

	// EnvironmentSandbox selects the providers' sandbox hosts
	EnvironmentSandbox = "sandbox"

	// EnvironmentProduction selects the providers' production hosts
	EnvironmentProduction = "production"
)

// Client is the main credit profile client. It talks to two providers:
// the card/transaction API and the credit bureau.
type Client struct {
	// Service interfaces
	Cards   CardService
	Bureau  BureauService
	Profile ProfileService

	// Internal fields
	cards        Transport
	bureau       Transport
	bureauTokens TokenSource
	options      *ClientOptions
	cache        *responseCache
	now          func() time.Time
}

// ClientOptions configures the client
type ClientOptions struct {
	// Environment selects sandbox or production provider hosts
	Environment string

	// CardsBaseURL overrides the card provider base URL
	CardsBaseURL string

	// BureauBaseURL overrides the credit bureau base URL
	BureauBaseURL string

	// CardsClientID and CardsSecret authenticate against the card provider
	CardsClientID string
	CardsSecret   string

	// BureauClientID and BureauClientSecret feed the bureau's OAuth flow
	BureauClientID     string
	BureauClientSecret string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// CacheTTL bounds provider-response reuse; negative disables caching
	CacheTTL time.Duration

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Transport handles JSON-over-HTTP communication with one provider
type Transport interface {
	Do(ctx context.Context, method, path string, body, result interface{}) error
	SetAuth(authHeader string)
}

// TokenSource supplies bearer tokens for the bureau API
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// NewClient creates a new credit profile client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		// Use provided options if available, otherwise create new ones
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		// Override DSN if provided separately
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		// Set default environment if not provided
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// Initialize Sentry
		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.Environment == "" {
		opts.Environment = EnvironmentSandbox
	}

	if opts.CardsBaseURL == "" {
		opts.CardsBaseURL = internalTypes.DefaultCardsBaseURL
		if opts.Environment == EnvironmentProduction {
			opts.CardsBaseURL = internalTypes.DefaultCardsProductionURL
		}
	}

	if opts.BureauBaseURL == "" {
		opts.BureauBaseURL = internalTypes.DefaultBureauBaseURL
		if opts.Environment == EnvironmentProduction {
			opts.BureauBaseURL = internalTypes.DefaultBureauProductionURL
		}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	// Create one transport per provider
	cardsTransport := transport.NewRESTTransport(&transport.Options{
		BaseURL:     opts.CardsBaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	bureauTransport := transport.NewRESTTransport(&transport.Options{
		BaseURL:     opts.BureauBaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	// Create client
	c := &Client{
		cards:        cardsTransport,
		bureau:       bureauTransport,
		bureauTokens: auth.NewService(opts.BureauBaseURL, opts.BureauClientID, opts.BureauClientSecret, opts.HTTPClient, opts.Logger),
		options:      opts,
		now:          time.Now,
	}
	c.cache = newResponseCache(opts.CacheTTL, c.nowFunc())

	// Initialize services
	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Cards = &cardService{client: c}
	c.Bureau = &bureauService{client: c}
	c.Profile = &profileService{client: c}
}

// nowFunc returns a clock function bound to the client so tests can
// substitute a fixed time in one place
func (c *Client) nowFunc() func() time.Time {
	return func() time.Time {
		return c.now()
	}
}

// captureError reports a provider failure to Sentry when configured
func (c *Client) captureError(ctx context.Context, err error, provider string) {
	if c.options.SentryDSN == "" && c.options.SentryOptions == nil {
		return
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("provider", provider)
			hub.CaptureException(err)
		})
	} else {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("provider", provider)
			sentry.CaptureException(err)
		})
	}

	if c.options.Hooks != nil && c.options.Hooks.OnError != nil {
		c.options.Hooks.OnError(ctx, err)
	}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	// Flush Sentry events with a 2 second timeout
	sentry.Flush(2 * time.Second)
}
