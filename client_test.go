package crawlkit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "ck_test_123"

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// capture records the last request seen by a stub transport.
type capture struct {
	method  string
	url     string
	headers http.Header
	body    []byte
}

// stubTransport answers every request with status and body.
func stubTransport(t *testing.T, c *capture, status int, body string) roundTripFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		if c != nil {
			c.method = req.Method
			c.url = req.URL.String()
			c.headers = req.Header.Clone()
			if req.Body != nil {
				data, err := io.ReadAll(req.Body)
				require.NoError(t, err, "read request body")
				c.body = data
			}
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func newTestClient(t *testing.T, rt http.RoundTripper, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL("http://api.test"), WithTransport(rt)}, opts...)
	c, err := New(testAPIKey, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNew_RejectsKeyWithoutPrefix(t *testing.T) {
	var calls atomic.Int32
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected call")
	})

	tests := []string{"sk_live_abc", "CK_upper", "ck", " ck_leading_space"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := New(key, WithTransport(rt))
			require.ErrorIs(t, err, ErrInvalidAPIKey)

			var ckErr *Error
			require.ErrorAs(t, err, &ckErr)
			assert.Equal(t, KindAuthentication, ckErr.Kind)
			assert.Equal(t, 401, ckErr.StatusCode)
		})
	}

	assert.Zero(t, calls.Load(), "transport was called")
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(testAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.sh", c.BaseURL())
	assert.Equal(t, 30*time.Second, c.Timeout())
	assert.NotNil(t, c.LinkedIn)
	assert.NotNil(t, c.Instagram)
	assert.NotNil(t, c.AppStore)
	assert.NotNil(t, c.TikTok)
}

func TestTikTokProfile_EndToEnd(t *testing.T) {
	var got capture
	body := `{"success":true,"data":{"profile":{"id":"1","username":"nike","nickname":"Nike","stats":{"followers":100,"following":1,"likes":5,"videos":2}},"timing":{"total":812},"creditsUsed":1,"creditsRemaining":99}}`
	c := newTestClient(t, stubTransport(t, &got, 200, body))

	data, err := c.TikTok.Profile(context.Background(), TikTokProfileParams{Username: "nike"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "http://api.test/v1/crawl/tiktok/profile", got.url)
	assert.Equal(t, "ApiKey "+testAPIKey, got.headers.Get("Authorization"))
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.Equal(t, "crawlkit-go/"+Version, got.headers.Get("User-Agent"))
	assert.JSONEq(t, `{"username":"nike"}`, string(got.body))

	want := &TikTokProfileData{
		Profile: TikTokProfile{
			ID:       "1",
			Username: "nike",
			Nickname: "Nike",
			Stats:    &TikTokProfileStats{Followers: 100, Following: 1, Likes: 5, Videos: 2},
		},
		Timing:  Timing{Total: 812},
		Credits: Credits{CreditsUsed: 1, CreditsRemaining: 99},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("Profile() mismatch (-want +got):\n%s", diff)
	}
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		path string
		call func(c *Client) error
	}{
		{"scrape", "/v1/crawl/scrape", func(c *Client) error {
			_, err := c.Scrape(ctx, ScrapeParams{URL: "https://example.com"})
			return err
		}},
		{"extract", "/v1/crawl/extract", func(c *Client) error {
			_, err := c.Extract(ctx, ExtractParams{URL: "https://example.com", Schema: map[string]any{"type": "object"}})
			return err
		}},
		{"search", "/v1/crawl/search", func(c *Client) error {
			_, err := c.Search(ctx, SearchParams{Query: "golang"})
			return err
		}},
		{"screenshot", "/v1/crawl/screenshot", func(c *Client) error {
			_, err := c.Screenshot(ctx, ScreenshotParams{URL: "https://example.com"})
			return err
		}},
		{"linkedin company", "/v1/crawl/linkedin/company", func(c *Client) error {
			_, err := c.LinkedIn.Company(ctx, LinkedInCompanyParams{URL: "https://www.linkedin.com/company/openai"})
			return err
		}},
		{"linkedin person", "/v1/crawl/linkedin/person", func(c *Client) error {
			_, err := c.LinkedIn.Person(ctx, LinkedInPersonParams{URLs: []string{"https://www.linkedin.com/in/x"}})
			return err
		}},
		{"instagram profile", "/v1/crawl/instagram/profile", func(c *Client) error {
			_, err := c.Instagram.Profile(ctx, InstagramProfileParams{Username: "nike"})
			return err
		}},
		{"instagram content", "/v1/crawl/instagram/content", func(c *Client) error {
			_, err := c.Instagram.Content(ctx, InstagramContentParams{Shortcode: "DU6g3wTgBC9"})
			return err
		}},
		{"playstore reviews", "/v1/crawl/playstore/reviews", func(c *Client) error {
			_, err := c.AppStore.PlayStoreReviews(ctx, ReviewsParams{AppID: "com.example"})
			return err
		}},
		{"playstore detail", "/v1/crawl/playstore/detail", func(c *Client) error {
			_, err := c.AppStore.PlayStoreDetail(ctx, DetailParams{AppID: "com.example"})
			return err
		}},
		{"appstore reviews", "/v1/crawl/appstore/reviews", func(c *Client) error {
			_, err := c.AppStore.AppStoreReviews(ctx, ReviewsParams{AppID: "123"})
			return err
		}},
		{"appstore detail", "/v1/crawl/appstore/detail", func(c *Client) error {
			_, err := c.AppStore.AppStoreDetail(ctx, DetailParams{AppID: "123"})
			return err
		}},
		{"tiktok profile", "/v1/crawl/tiktok/profile", func(c *Client) error {
			_, err := c.TikTok.Profile(ctx, TikTokProfileParams{Username: "nike"})
			return err
		}},
		{"tiktok post", "/v1/crawl/tiktok/post", func(c *Client) error {
			_, err := c.TikTok.Content(ctx, TikTokPostParams{URL: "https://www.tiktok.com/@nike/video/1"})
			return err
		}},
		{"tiktok posts", "/v1/crawl/tiktok/posts", func(c *Client) error {
			_, err := c.TikTok.Posts(ctx, TikTokPostsParams{Username: "nike"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got capture
			c := newTestClient(t, stubTransport(t, &got, 200, `{"success":true,"data":{}}`))

			require.NoError(t, tt.call(c))
			assert.Equal(t, http.MethodPost, got.method)
			assert.Equal(t, "http://api.test"+tt.path, got.url)
		})
	}
}

func TestScrape_InsufficientCredits(t *testing.T) {
	body := `{"success":false,"error":{"code":"INSUFFICIENT_CREDITS","message":"Not enough credits"},"creditsRemaining":0}`
	c := newTestClient(t, stubTransport(t, nil, 402, body))

	_, err := c.Scrape(context.Background(), ScrapeParams{URL: "https://example.com"})
	require.ErrorIs(t, err, ErrInsufficientCredits)

	var ckErr *Error
	require.ErrorAs(t, err, &ckErr)
	require.NotNil(t, ckErr.CreditsRemaining)
	assert.Equal(t, 0, *ckErr.CreditsRemaining)
	assert.Nil(t, ckErr.CreditsRefunded)
	assert.Equal(t, KindInsufficientCredits, KindOf(err))
	assert.False(t, IsRetryable(err))
}

func TestScrape_TimeoutCodeKeepsCredits(t *testing.T) {
	body := `{"success":false,"error":{"code":"TIMEOUT","message":"Page load timeout"},"creditsRefunded":3,"creditsRemaining":97}`
	c := newTestClient(t, stubTransport(t, nil, 504, body))

	_, err := c.Scrape(context.Background(), ScrapeParams{URL: "https://slow.example"})
	var ckErr *Error
	require.ErrorAs(t, err, &ckErr)
	assert.Equal(t, KindTimeout, ckErr.Kind)
	assert.Equal(t, 408, ckErr.StatusCode)
	require.NotNil(t, ckErr.CreditsRefunded)
	assert.Equal(t, 3, *ckErr.CreditsRefunded)
	require.NotNil(t, ckErr.CreditsRemaining)
	assert.Equal(t, 97, *ckErr.CreditsRemaining)
	assert.True(t, IsRetryable(err))
}

func TestScrape_NotFoundStatusUsesCanonicalCode(t *testing.T) {
	body := `{"success":false,"error":{"code":"BLOCKED"},"creditsRefunded":1,"creditsRemaining":41}`
	c := newTestClient(t, stubTransport(t, nil, 404, body))

	_, err := c.Scrape(context.Background(), ScrapeParams{URL: "https://gone.example"})
	var ckErr *Error
	require.ErrorAs(t, err, &ckErr)
	assert.Equal(t, KindNotFound, ckErr.Kind)
	assert.Equal(t, CodeNotFound, ckErr.Code)
	assert.Equal(t, "Resource not found", ckErr.Message)
	require.NotNil(t, ckErr.CreditsRemaining)
	assert.Equal(t, 41, *ckErr.CreditsRemaining)
}

func TestClientTimeout(t *testing.T) {
	var aborted atomic.Bool
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		aborted.Store(true)
		return nil, req.Context().Err()
	})
	c := newTestClient(t, rt, WithTimeout(50*time.Millisecond))

	_, err := c.Search(context.Background(), SearchParams{Query: "never"})
	require.ErrorIs(t, err, ErrTimeout)
	assert.True(t, aborted.Load(), "transport request was not aborted")
}

func TestExtractInto(t *testing.T) {
	type product struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	var got capture
	body := `{"success":true,"data":{"url":"https://shop.example","json":{"name":"Widget","price":9.5},"creditsUsed":5,"creditsRemaining":95}}`
	c := newTestClient(t, stubTransport(t, &got, 200, body))

	params := ExtractParams{
		URL:    "https://shop.example",
		Schema: map[string]any{"type": "object"},
		Options: &ExtractOptions{
			ScrapeOptions: ScrapeOptions{OnlyMainContent: true},
			Prompt:        "extract the product",
		},
	}
	res, err := ExtractInto[product](context.Background(), c, params)
	require.NoError(t, err)
	assert.Equal(t, product{Name: "Widget", Price: 9.5}, res.JSON)
	assert.Equal(t, 5, res.CreditsUsed)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	wantSent := map[string]any{
		"url":    "https://shop.example",
		"schema": map[string]any{"type": "object"},
		"options": map[string]any{
			"onlyMainContent": true,
			"prompt":          "extract the product",
		},
	}
	if diff := cmp.Diff(wantSent, sent); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_RawJSON(t *testing.T) {
	body := `{"success":true,"data":{"json":{"b":1,"a":2}}}`
	c := newTestClient(t, stubTransport(t, nil, 200, body))

	res, err := c.Extract(context.Background(), ExtractParams{URL: "https://x.example", Schema: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":2}`, string(res.JSON))
}

func TestDo_GetWithQuery(t *testing.T) {
	var got capture
	c := newTestClient(t, stubTransport(t, &got, 200, `{"success":true,"data":{"ok":true}}`))

	var out json.RawMessage
	err := c.Do(context.Background(), http.MethodGet, "/v1/account", nil, Query{"a": 1, "b": nil}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "http://api.test/v1/account?a=1", got.url)
	assert.Equal(t, `{"ok":true}`, string(out))
}

func TestHTTPTestServer_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c, err := New(testAPIKey, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.Scrape(context.Background(), ScrapeParams{URL: "https://example.com"})
	var ckErr *Error
	require.ErrorAs(t, err, &ckErr)
	assert.Equal(t, KindParse, ckErr.Kind)
	assert.Equal(t, 200, ckErr.StatusCode)
}

func TestHTTPTestServer_NullBodyIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	c, err := New(testAPIKey, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.Search(context.Background(), SearchParams{Query: "q"})
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, KindParse, KindOf(err))
}
