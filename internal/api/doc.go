// Package api provides the request executor behind every CrawlKit operation.
// It builds the request, enforces the per-call timeout, unwraps the response
// envelope and turns every failure into an [apierrors.Error].
//
// # Client Creation
//
// [NewClient] takes a [Config]. Only APIKey is required; the remaining fields
// fall back to [DefaultBaseURL], [DefaultTimeout] and [DefaultUserAgent]. The
// API key is sent as "Authorization: ApiKey <key>" on every call, together
// with a fresh X-Request-Id.
//
// # Response Envelope
//
// Every response body is one of:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": {"code": "...", "message": "..."},
//	 "creditsRefunded": 1, "creditsRemaining": 99}
//
// A successful envelope yields its data unchanged. A failed one is handed to
// [apierrors.Classify]. A body that is not valid JSON is a PARSE_ERROR
// carrying the status the server actually returned, 200 included.
//
// # Timeouts
//
// Each call derives a context bounded by the configured timeout. When that
// deadline fires the in-flight request is aborted and a TIMEOUT error with
// status 408 is returned. Cancelling the caller's context yields UNKNOWN.
//
// The client never retries and never rate-limits.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
