package crawlkit

import (
	"github.com/mozhn/crawlkit-sdk/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned by New when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrInvalidAPIKey is returned by New when the key lacks the "ck_" prefix.
	ErrInvalidAPIKey = apierrors.ErrInvalidAPIKey

	// ErrUnauthorized matches authentication failures.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrInsufficientCredits matches calls rejected for lack of credits.
	ErrInsufficientCredits = apierrors.ErrInsufficientCredits

	// ErrValidation matches calls rejected for invalid parameters.
	ErrValidation = apierrors.ErrValidation

	// ErrRateLimited matches calls rejected by the API rate limit.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrTimeout matches client-side and server-side timeouts.
	ErrTimeout = apierrors.ErrTimeout

	// ErrNotFound matches calls for resources that do not exist.
	ErrNotFound = apierrors.ErrNotFound

	// ErrNetwork matches failures of the target fetch (DNS, TLS, proxy, redirects).
	ErrNetwork = apierrors.ErrNetwork

	// ErrParse matches responses whose body could not be decoded.
	ErrParse = apierrors.ErrParse

	// ErrUnknown matches transport failures that could not be classified.
	ErrUnknown = apierrors.ErrUnknown

	// ErrAPI matches errors carrying a code this client does not recognize.
	ErrAPI = apierrors.ErrAPI
)

// Error is returned by every failed call. Use errors.As to inspect it:
//
//	var ckErr *crawlkit.Error
//	if errors.As(err, &ckErr) && ckErr.Kind == crawlkit.KindInsufficientCredits {
//	    log.Printf("out of credits, %d remaining", *ckErr.CreditsRemaining)
//	}
type Error = apierrors.Error

// Kind classifies an Error.
type Kind = apierrors.Kind

// Error kinds.
const (
	KindAuthentication      = apierrors.KindAuthentication
	KindInsufficientCredits = apierrors.KindInsufficientCredits
	KindValidation          = apierrors.KindValidation
	KindRateLimited         = apierrors.KindRateLimited
	KindTimeout             = apierrors.KindTimeout
	KindNotFound            = apierrors.KindNotFound
	KindNetwork             = apierrors.KindNetwork
	KindParse               = apierrors.KindParse
	KindUnknown             = apierrors.KindUnknown
	KindAPI                 = apierrors.KindAPI
)

// Error codes reported by the API.
const (
	CodeValidation          = apierrors.CodeValidation
	CodeInsufficientCredits = apierrors.CodeInsufficientCredits
	CodeTimeout             = apierrors.CodeTimeout
	CodeDNSFailed           = apierrors.CodeDNSFailed
	CodeConnectionRefused   = apierrors.CodeConnectionRefused
	CodeSSLError            = apierrors.CodeSSLError
	CodeTooManyRedirects    = apierrors.CodeTooManyRedirects
	CodeInvalidURL          = apierrors.CodeInvalidURL
	CodeProxyError          = apierrors.CodeProxyError
	CodeParseError          = apierrors.CodeParseError
	CodeRateLimited         = apierrors.CodeRateLimited
	CodeNotFound            = apierrors.CodeNotFound
	CodeBlocked             = apierrors.CodeBlocked
	CodeInstagramBlocked    = apierrors.CodeInstagramBlocked
	CodeInstagramError      = apierrors.CodeInstagramError
	CodeUnknown             = apierrors.CodeUnknown
)

// IsRetryable reports whether err is an *Error whose call may succeed when
// issued again later. The client itself never retries.
func IsRetryable(err error) bool {
	if ckErr, ok := asError(err); ok {
		return ckErr.Retryable()
	}
	return false
}

// KindOf returns the Kind of err, or the empty Kind when err is not an *Error.
func KindOf(err error) Kind {
	if ckErr, ok := asError(err); ok {
		return ckErr.Kind
	}
	return ""
}
