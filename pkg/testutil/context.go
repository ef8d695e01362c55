package testutil

import (
	"context"
	"net/http"
	"time"

	id "talentry/pkg/domain"
	"talentry/pkg/requestcontext"
)

// WithAccount adds an account ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If the accountID is not a valid UUID, it will not be added to the context.
func WithAccount(req *http.Request, accountID string) *http.Request {
	parsed, err := id.ParseAccountID(accountID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithAccountID(req.Context(), parsed)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped time, as the request-time middleware
// would for a live request.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), at)
	return req.WithContext(ctx)
}

// WithClientIP records the caller's network address, as the client-metadata
// middleware would for a live request.
func WithClientIP(req *http.Request, ip string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent())
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
