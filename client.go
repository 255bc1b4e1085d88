package crawlkit

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mozhn/crawlkit-sdk/internal/api"
	"github.com/mozhn/crawlkit-sdk/internal/apierrors"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// apiKeyPrefix is required on every CrawlKit API key.
const apiKeyPrefix = "ck_"

// Client is the CrawlKit API client. It is safe for concurrent use.
//
// Crawl operations (Scrape, Extract, Search, Screenshot) are methods on the
// client; platform operations are grouped under the resource fields.
type Client struct {
	apiClient *api.Client

	// LinkedIn scrapes company pages and person profiles.
	LinkedIn *LinkedInService
	// Instagram scrapes profiles and posts.
	Instagram *InstagramService
	// AppStore scrapes Google Play and Apple App Store listings and reviews.
	AppStore *AppStoreService
	// TikTok scrapes profiles, single posts and paginated post lists.
	TikTok *TikTokService
}

// New creates a new CrawlKit client.
//
// apiKey must be non-empty and start with "ck_". A malformed key is rejected
// with an authentication *Error before any network activity.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.NewAuthentication(ErrMissingAPIKey)
	}
	if !strings.HasPrefix(apiKey, apiKeyPrefix) {
		return nil, apierrors.NewAuthentication(ErrInvalidAPIKey)
	}

	cfg := &clientConfig{
		baseURL:   defaultBaseURL,
		timeout:   defaultTimeout,
		userAgent: "crawlkit-go/" + Version,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient := api.NewClient(buildAPIConfig(apiKey, cfg))
	return newClient(apiClient), nil
}

// buildAPIConfig translates the public options into the executor config.
func buildAPIConfig(apiKey string, cfg *clientConfig) api.Config {
	httpClient := cfg.httpClient
	if cfg.transport != nil {
		var base http.Client
		if httpClient != nil {
			base = *httpClient
		}
		base.Transport = cfg.transport
		httpClient = &base
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var metrics *api.Metrics
	if cfg.registerer != nil {
		metrics = api.NewMetrics(cfg.registerer)
	}

	return api.Config{
		APIKey:         apiKey,
		BaseURL:        cfg.baseURL,
		Timeout:        cfg.timeout,
		HTTPClient:     httpClient,
		UserAgent:      cfg.userAgent,
		Logger:         cfg.logger,
		Metrics:        metrics,
		TracerProvider: cfg.tracerProvider,
	}
}

func newClient(apiClient *api.Client) *Client {
	return &Client{
		apiClient: apiClient,
		LinkedIn:  &LinkedInService{api: apiClient},
		Instagram: &InstagramService{api: apiClient},
		AppStore:  &AppStoreService{api: apiClient},
		TikTok:    &TikTokService{api: apiClient},
	}
}

// BaseURL returns the API base URL the client sends requests to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// Timeout returns the timeout applied to every call.
func (c *Client) Timeout() time.Duration {
	return c.apiClient.Timeout()
}

// Query holds GET parameters for Do. Nil values are omitted.
type Query = api.Query

// Do calls an arbitrary endpoint and decodes the response data into result.
// It is the escape hatch for endpoints this package does not wrap.
//
// body is JSON-encoded when non-nil. Pass a *json.RawMessage as result to
// receive the data bytes unchanged.
func (c *Client) Do(ctx context.Context, method, path string, body any, query Query, result any) error {
	return c.apiClient.Do(ctx, method, path, body, query, result)
}

func asError(err error) (*Error, bool) {
	var ckErr *Error
	if errors.As(err, &ckErr) {
		return ckErr, true
	}
	return nil, false
}
