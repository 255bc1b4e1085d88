package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mozhn/crawlkit-sdk/internal/apierrors"
)

const (
	// DefaultBaseURL is the API endpoint used when none is configured.
	DefaultBaseURL = "https://api.example.sh"

	// DefaultTimeout bounds every call when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the SDK to the API.
	DefaultUserAgent = "crawlkit-go"

	tracerName = "github.com/mozhn/crawlkit-sdk/internal/api"
)

// Config holds the configuration for creating a new API client.
type Config struct {
	// APIKey is sent as "Authorization: ApiKey <key>" on every call.
	// Its format is validated by the caller before the client is built.
	APIKey string

	// BaseURL is prepended verbatim to every endpoint path.
	BaseURL string

	// Timeout bounds each call, from request start to a fully read body.
	// Zero or negative selects DefaultTimeout.
	Timeout time.Duration

	// HTTPClient performs the round trips. Stub its Transport in tests.
	HTTPClient *http.Client

	UserAgent      string
	Logger         *zap.Logger
	Metrics        *Metrics
	TracerProvider trace.TracerProvider
}

// Client is the request executor shared by every resource. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	timeout   time.Duration
	userAgent string
	resty     *resty.Client
	logger    *zap.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// NewClient creates a new API client from the given configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	// resty installs a default transport on the client it wraps.
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		hc := *cfg.HTTPClient
		httpClient = &hc
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	rc := resty.NewWithClient(httpClient).
		SetLogger(logger.Sugar()).
		SetRetryCount(0)

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		timeout:   timeout,
		userAgent: userAgent,
		resty:     rc,
		logger:    logger,
		metrics:   cfg.Metrics,
		tracer:    tp.Tracer(tracerName),
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

var errNullEnvelope = errors.New("response body is null, want a JSON object")

// envelope is the wire shape of every API response. Success alone decides
// which of the other fields are meaningful.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	CreditsRefunded  *int `json:"creditsRefunded"`
	CreditsRemaining *int `json:"creditsRemaining"`
}

// Do performs one HTTP call and decodes the envelope's data into result.
//
// body, when non-nil, is JSON-encoded as the request body. Entries of query
// whose value is nil are dropped. result may be nil to discard the data.
// Every failure is returned as an *apierrors.Error.
func (c *Client) Do(ctx context.Context, method, path string, body any, query Query, result any) error {
	requestID := uuid.NewString()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("crawlkit.request_id", requestID),
	)

	status, err := c.do(ctx, method, path, body, query, result, requestID)
	err = apierrors.WithRequestID(err, requestID)

	outcome := "success"
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		var apiErr *apierrors.Error
		if errors.As(err, &apiErr) {
			outcome = apiErr.Kind.String()
			span.SetAttributes(attribute.String("crawlkit.error.kind", outcome))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	elapsed := time.Since(start)
	c.metrics.observe(method, path, outcome, elapsed)
	c.logger.Debug("crawlkit request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
		zap.String("request_id", requestID),
		zap.String("outcome", outcome),
	)

	return err
}

// do executes the call and returns the transport status (0 when no
// response arrived) together with the classified error.
func (c *Client) do(ctx context.Context, method, path string, body any, query Query, result any, requestID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := c.resty.R().
		SetContext(ctx).
		SetHeader("Authorization", "ApiKey "+c.apiKey).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-Id", requestID)

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &apierrors.Error{
				Kind:       apierrors.KindValidation,
				Code:       apierrors.CodeValidation,
				Message:    fmt.Sprintf("failed to marshal request body: %v", err),
				StatusCode: http.StatusBadRequest,
				Err:        err,
			}
		}
		req.SetHeader("Content-Type", "application/json").SetBody(data)
	}

	if values := query.Values(); len(values) > 0 {
		req.SetQueryParamsFromValues(values)
	}

	resp, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		return 0, c.transportError(ctx, err)
	}

	status := resp.StatusCode()

	var env *envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return status, apierrors.NewParse(status, err)
	}
	if env == nil {
		return status, apierrors.NewParse(status, errNullEnvelope)
	}

	if !env.Success {
		var code, message string
		if env.Error != nil {
			code, message = env.Error.Code, env.Error.Message
		}
		return status, apierrors.Classify(code, message, status, env.CreditsRefunded, env.CreditsRemaining)
	}

	if result == nil {
		return status, nil
	}
	if raw, ok := result.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], env.Data...)
		return status, nil
	}
	data := env.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if err := json.Unmarshal(data, result); err != nil {
		return status, apierrors.NewParse(status, err)
	}
	return status, nil
}

// transportError maps a failure that produced no response.
func (c *Client) transportError(ctx context.Context, err error) error {
	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeout(
			fmt.Sprintf("Request timed out after %dms", c.timeout.Milliseconds()),
			err,
		)
	}
	return apierrors.NewUnknown(err)
}

// Get issues a GET request and decodes the data into a new T.
func Get[T any](ctx context.Context, c *Client, path string, query Query) (*T, error) {
	var out T
	if err := c.Do(ctx, http.MethodGet, path, nil, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Post issues a POST request with a JSON body and decodes the data into a new T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out T
	if err := c.Do(ctx, http.MethodPost, path, body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
