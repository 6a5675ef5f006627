package helpers

import "errors"

// Failure kinds surfaced by the login flows and content operations. The flows
// absorb raw transport errors and wrap one of these instead, so callers can
// errors.Is their way to a retry/alert/manual-entry decision.
var (
	// Network, DNS or timeout failure before any usable HTTP response.
	ErrTransportUnreachable = errors.New("transport unreachable")

	// A required step answered with a non-200 status.
	ErrHTTPStatus = errors.New("unexpected http status")

	// Response shape does not match the expected API variant.
	ErrProtocolMismatch = errors.New("protocol mismatch")

	// The solver produced no confident 4-digit answer. Retryable.
	ErrCaptchaSolveFailure = errors.New("captcha solve failure")

	// The display rejected the credentials/captcha pair. The two cannot be
	// told apart from the response.
	ErrAuthRejected = errors.New("credentials or captcha rejected")

	// Lockout signal from a legacy display. Terminal: must not be retried.
	ErrAccountRestricted = errors.New("account restricted")

	// Playback target absent from the current media listing.
	ErrReferenceNotFound = errors.New("reference not found")

	// Operation attempted before a successful login.
	ErrNotAuthenticated = errors.New("not authenticated")
)
