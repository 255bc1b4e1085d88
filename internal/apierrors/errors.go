// Package apierrors provides the typed error taxonomy shared by the CrawlKit
// client and the classifier that maps failed API envelopes onto it.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidAPIKey is returned when the API key does not carry the "ck_" prefix.
	ErrInvalidAPIKey = errors.New(`invalid API key format, API keys must start with "ck_"`)

	// ErrUnauthorized matches every authentication failure.
	ErrUnauthorized = errors.New("invalid or missing API key")

	// ErrInsufficientCredits matches errors raised when the account is out of credits.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrValidation matches errors caused by invalid request parameters.
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited matches errors raised when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrTimeout matches client-side and server-side timeouts.
	ErrTimeout = errors.New("request timed out")

	// ErrNotFound matches errors for resources that do not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork matches failures of the upstream fetch (DNS, TLS, proxy, ...).
	ErrNetwork = errors.New("network error")

	// ErrParse matches responses whose body could not be decoded.
	ErrParse = errors.New("failed to parse API response")

	// ErrUnknown matches transport failures that could not be classified.
	ErrUnknown = errors.New("unknown error")

	// ErrAPI matches API errors carrying a code the client does not recognize.
	ErrAPI = errors.New("API error")
)

// API error codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeTimeout             = "TIMEOUT"
	CodeDNSFailed           = "DNS_FAILED"
	CodeConnectionRefused   = "CONNECTION_REFUSED"
	CodeSSLError            = "SSL_ERROR"
	CodeTooManyRedirects    = "TOO_MANY_REDIRECTS"
	CodeInvalidURL          = "INVALID_URL"
	CodeProxyError          = "PROXY_ERROR"
	CodeParseError          = "PARSE_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeNotFound            = "NOT_FOUND"
	CodeBlocked             = "BLOCKED"
	CodeInstagramBlocked    = "INSTAGRAM_BLOCKED"
	CodeInstagramError      = "INSTAGRAM_ERROR"
	CodeUnknown             = "UNKNOWN"
)

// Kind is the closed set of error classes a failed call resolves to.
// Callers switch on Kind rather than on concrete types.
type Kind string

const (
	KindAuthentication      Kind = "authentication"
	KindInsufficientCredits Kind = "insufficient_credits"
	KindValidation          Kind = "validation"
	KindRateLimited         Kind = "rate_limited"
	KindTimeout             Kind = "timeout"
	KindNotFound            Kind = "not_found"
	KindNetwork             Kind = "network"
	KindParse               Kind = "parse"
	KindUnknown             Kind = "unknown"
	// KindAPI is the catch-all for error codes the client does not recognize.
	KindAPI Kind = "api"
)

func (k Kind) String() string {
	return string(k)
}

// Retryable reports whether a failure of this kind may succeed when the same
// call is issued again later.
func (k Kind) Retryable() bool {
	switch k {
	case KindTimeout, KindNetwork, KindRateLimited:
		return true
	default:
		return false
	}
}

// sentinel returns the sentinel error matched by errors.Is for the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrUnauthorized
	case KindInsufficientCredits:
		return ErrInsufficientCredits
	case KindValidation:
		return ErrValidation
	case KindRateLimited:
		return ErrRateLimited
	case KindTimeout:
		return ErrTimeout
	case KindNotFound:
		return ErrNotFound
	case KindNetwork:
		return ErrNetwork
	case KindParse:
		return ErrParse
	case KindUnknown:
		return ErrUnknown
	case KindAPI:
		return ErrAPI
	}
	return nil
}

// Error is the single error type returned by every failed API call.
//
// CreditsRefunded and CreditsRemaining are nil when the API did not report
// them; a non-nil pointer to zero means the API reported zero.
type Error struct {
	Kind             Kind
	Code             string
	Message          string
	StatusCode       int
	CreditsRefunded  *int
	CreditsRemaining *int
	RequestID        string // X-Request-Id sent with the failed call
	Err              error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	code := e.Code
	if code == "" {
		code = "API"
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s error %d: %s (request_id: %s)", code, e.StatusCode, msg, e.RequestID)
	}
	return fmt.Sprintf("%s error %d: %s", code, e.StatusCode, msg)
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the call that produced e may be retried.
func (e *Error) Retryable() bool {
	return e.Kind.Retryable()
}

// WithRequestID returns a copy of the error carrying the given request ID.
// If the error is not an *Error, it is returned unchanged.
func WithRequestID(err error, requestID string) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		cp := *apiErr
		cp.RequestID = requestID
		return &cp
	}
	return err
}

// Default messages for status-classified errors whose body carries none.
const (
	msgUnauthorized = "Invalid or missing API key"
	msgRateLimited  = "Rate limit exceeded"
	msgNotFound     = "Resource not found"
)

// Classify maps a failed response envelope onto an *Error.
//
// Status codes that are unambiguous (401, 402, 429, 404) win over the code in
// the body and set the canonical code of their kind; otherwise the API error
// code decides. Credit fields are carried over untouched on every branch
// except authentication, which never charges.
func Classify(code, message string, status int, refunded, remaining *int) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{
			Kind:       KindAuthentication,
			Code:       CodeValidation,
			Message:    orDefault(message, msgUnauthorized),
			StatusCode: status,
		}
	case http.StatusPaymentRequired:
		return withCredits(KindInsufficientCredits, CodeInsufficientCredits, message, status, refunded, remaining)
	case http.StatusTooManyRequests:
		return withCredits(KindRateLimited, CodeRateLimited, orDefault(message, msgRateLimited), status, refunded, remaining)
	case http.StatusNotFound:
		return withCredits(KindNotFound, CodeNotFound, orDefault(message, msgNotFound), status, refunded, remaining)
	}

	switch code {
	case CodeValidation:
		return withCredits(KindValidation, code, message, status, refunded, remaining)
	case CodeInsufficientCredits:
		return withCredits(KindInsufficientCredits, code, message, http.StatusPaymentRequired, refunded, remaining)
	case CodeTimeout:
		return withCredits(KindTimeout, code, message, http.StatusRequestTimeout, refunded, remaining)
	case CodeRateLimited:
		return withCredits(KindRateLimited, code, orDefault(message, msgRateLimited), http.StatusTooManyRequests, refunded, remaining)
	case CodeNotFound:
		return withCredits(KindNotFound, code, orDefault(message, msgNotFound), http.StatusNotFound, refunded, remaining)
	case CodeDNSFailed, CodeConnectionRefused, CodeSSLError, CodeTooManyRedirects, CodeProxyError:
		// The upstream fetch failed, not the call to the API itself.
		return withCredits(KindNetwork, code, message, http.StatusBadGateway, refunded, remaining)
	default:
		return withCredits(KindAPI, code, message, status, refunded, remaining)
	}
}

func withCredits(kind Kind, code, message string, status int, refunded, remaining *int) *Error {
	return &Error{
		Kind:             kind,
		Code:             code,
		Message:          message,
		StatusCode:       status,
		CreditsRefunded:  copyInt(refunded),
		CreditsRemaining: copyInt(remaining),
	}
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// NewTimeout reports a call aborted by the client-side deadline. The server
// state is unknown, so no credit information is attached.
func NewTimeout(message string, cause error) *Error {
	return &Error{
		Kind:       KindTimeout,
		Code:       CodeTimeout,
		Message:    message,
		StatusCode: http.StatusRequestTimeout,
		Err:        cause,
	}
}

// NewParse reports a response body that could not be decoded. status is the
// status the transport actually returned, even when it signalled success.
func NewParse(status int, cause error) *Error {
	return &Error{
		Kind:       KindParse,
		Code:       CodeParseError,
		Message:    "Failed to parse API response",
		StatusCode: status,
		Err:        cause,
	}
}

// NewUnknown wraps a transport failure that is neither a timeout nor an
// already classified *Error.
func NewUnknown(cause error) *Error {
	msg := "An unknown error occurred"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{
		Kind:       KindUnknown,
		Code:       CodeUnknown,
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
		Err:        cause,
	}
}

// NewAuthentication reports an API key rejected before any request was made.
func NewAuthentication(cause error) *Error {
	return &Error{
		Kind:       KindAuthentication,
		Code:       CodeValidation,
		Message:    cause.Error(),
		StatusCode: http.StatusUnauthorized,
		Err:        cause,
	}
}
