package crawlkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mozhn/crawlkit-sdk/internal/api"
)

// Timing reports server-side processing time in milliseconds.
type Timing struct {
	Total int64 `json:"total"`
}

// Credits is embedded in every response and reports the account balance
// after the call.
type Credits struct {
	CreditsUsed      int `json:"creditsUsed"`
	CreditsRemaining int `json:"creditsRemaining"`
}

// ScrapeOptions tunes how a page is fetched and rendered.
type ScrapeOptions struct {
	// TimeoutMS bounds the server-side page load, in milliseconds.
	TimeoutMS       int               `json:"timeout,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	WaitFor         *WaitFor          `json:"waitFor,omitempty"`
	Actions         []BrowserAction   `json:"actions,omitempty"`
	OnlyMainContent bool              `json:"onlyMainContent,omitempty"`
	ContentSelector string            `json:"contentSelector,omitempty"`
}

// ScrapeParams are the parameters for Scrape.
type ScrapeParams struct {
	URL     string         `json:"url"`
	Options *ScrapeOptions `json:"options,omitempty"`
}

// PageMetadata is the metadata extracted from a page's head.
type PageMetadata struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Language      *string  `json:"language"`
	OGImage       *string  `json:"ogImage"`
	OGTitle       *string  `json:"ogTitle"`
	OGDescription *string  `json:"ogDescription"`
	SiteName      *string  `json:"siteName"`
	Favicon       *string  `json:"favicon"`
	Author        *string  `json:"author"`
	PublishedTime *string  `json:"publishedTime"`
	ModifiedTime  *string  `json:"modifiedTime"`
	Keywords      []string `json:"keywords"`
	Canonical     *string  `json:"canonical"`
	Robots        *string  `json:"robots"`
}

// PageLinks splits the links found on a page by origin.
type PageLinks struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

// CrawlStats breaks down server-side processing time in milliseconds.
type CrawlStats struct {
	FetchTime      int64  `json:"fetchTime"`
	CleaningTime   int64  `json:"cleaningTime"`
	ExtractionTime int64  `json:"extractionTime"`
	ConversionTime int64  `json:"conversionTime"`
	LLMTime        *int64 `json:"llmTime"`
	TotalTime      int64  `json:"totalTime"`
}

// ActionResult reports the outcome of one BrowserAction.
type ActionResult struct {
	Type     string          `json:"type"`
	Success  bool            `json:"success"`
	Duration int64           `json:"duration"`
	Value    json.RawMessage `json:"value,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ScrapeData is the result of Scrape.
type ScrapeData struct {
	URL           string                     `json:"url"`
	FinalURL      string                     `json:"finalUrl"`
	Markdown      string                     `json:"markdown"`
	HTML          string                     `json:"html"`
	RawHTML       string                     `json:"rawHtml"`
	JSON          map[string]json.RawMessage `json:"json"`
	Metadata      PageMetadata               `json:"metadata"`
	Links         PageLinks                  `json:"links"`
	Stats         CrawlStats                 `json:"stats"`
	EmbeddedData  map[string]json.RawMessage `json:"embeddedData,omitempty"`
	ActionResults []ActionResult             `json:"actionResults,omitempty"`
	Credits
}

// Scrape fetches a URL and returns its markdown, HTML, metadata and links.
// Costs 1 credit.
func (c *Client) Scrape(ctx context.Context, params ScrapeParams) (*ScrapeData, error) {
	return api.Post[ScrapeData](ctx, c.apiClient, "/v1/crawl/scrape", params)
}

// ExtractOptions extends ScrapeOptions with a prompt guiding the extraction.
type ExtractOptions struct {
	ScrapeOptions
	Prompt string `json:"prompt,omitempty"`
}

// ExtractParams are the parameters for Extract. Schema is a JSON Schema
// describing the structure to extract.
type ExtractParams struct {
	URL     string          `json:"url"`
	Schema  any             `json:"schema"`
	Options *ExtractOptions `json:"options,omitempty"`
}

// ExtractResult is the result of an extraction, with the extracted value
// decoded into T.
type ExtractResult[T any] struct {
	URL           string                     `json:"url"`
	FinalURL      string                     `json:"finalUrl"`
	Markdown      string                     `json:"markdown"`
	HTML          string                     `json:"html"`
	RawHTML       string                     `json:"rawHtml"`
	JSON          T                          `json:"json"`
	Metadata      PageMetadata               `json:"metadata"`
	Links         PageLinks                  `json:"links"`
	Stats         CrawlStats                 `json:"stats"`
	EmbeddedData  map[string]json.RawMessage `json:"embeddedData,omitempty"`
	ActionResults []ActionResult             `json:"actionResults,omitempty"`
	Credits
}

// ExtractData is the result of Extract with the extracted value left raw.
type ExtractData = ExtractResult[json.RawMessage]

// Extract pulls structured data out of a page using an LLM guided by
// params.Schema. Costs 5 credits.
func (c *Client) Extract(ctx context.Context, params ExtractParams) (*ExtractData, error) {
	return ExtractInto[json.RawMessage](ctx, c, params)
}

// ExtractInto is Extract with the extracted value decoded into T. A value
// that does not fit T is reported as a parse error.
func ExtractInto[T any](ctx context.Context, c *Client, params ExtractParams) (*ExtractResult[T], error) {
	return api.Post[ExtractResult[T]](ctx, c.apiClient, "/v1/crawl/extract", params)
}

// TimeRange restricts search results by age.
type TimeRange string

const (
	TimeRangeDay   TimeRange = "d"
	TimeRangeWeek  TimeRange = "w"
	TimeRangeMonth TimeRange = "m"
	TimeRangeYear  TimeRange = "y"
)

// ParseTimeRange accepts "d", "w", "m", "y" or the long forms
// "day", "week", "month", "year".
func ParseTimeRange(s string) (TimeRange, error) {
	switch s {
	case "d", "day":
		return TimeRangeDay, nil
	case "w", "week":
		return TimeRangeWeek, nil
	case "m", "month":
		return TimeRangeMonth, nil
	case "y", "year":
		return TimeRangeYear, nil
	}
	return "", fmt.Errorf("invalid time range %q", s)
}

// SearchOptions narrows a web search.
type SearchOptions struct {
	Language   string    `json:"language,omitempty"`
	Region     string    `json:"region,omitempty"`
	TimeRange  TimeRange `json:"timeRange,omitempty"`
	MaxResults int       `json:"maxResults,omitempty"`
}

// SearchParams are the parameters for Search.
type SearchParams struct {
	Query   string         `json:"query"`
	Options *SearchOptions `json:"options,omitempty"`
}

// SearchResult is one organic search hit.
type SearchResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
}

// SearchData is the result of Search.
type SearchData struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"totalResults"`
	Results      []SearchResult `json:"results"`
	Timing       Timing         `json:"timing"`
	Credits
}

// Search runs a web search. Costs 1 credit per page of results.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchData, error) {
	return api.Post[SearchData](ctx, c.apiClient, "/v1/crawl/search", params)
}

// ScreenshotOptions sets the viewport and readiness condition.
type ScreenshotOptions struct {
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	TimeoutMS       int    `json:"timeout,omitempty"`
	WaitForSelector string `json:"waitForSelector,omitempty"`
}

// ScreenshotParams are the parameters for Screenshot.
type ScreenshotParams struct {
	URL     string             `json:"url"`
	Options *ScreenshotOptions `json:"options,omitempty"`
}

// ScreenshotData is the result of Screenshot. URL points at the stored image.
type ScreenshotData struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Timing Timing `json:"timing"`
	Credits
}

// Screenshot captures a full-page screenshot. Costs 1 credit.
func (c *Client) Screenshot(ctx context.Context, params ScreenshotParams) (*ScreenshotData, error) {
	return api.Post[ScreenshotData](ctx, c.apiClient, "/v1/crawl/screenshot", params)
}
