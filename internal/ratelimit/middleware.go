package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"talentry/internal/audit"
	"talentry/internal/platform/config"
	"talentry/internal/ratelimit/metrics"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/platform/privacy"
	"talentry/pkg/requestcontext"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Middleware enforces the per-class budgets on HTTP routes.
type Middleware struct {
	store          Store
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	disabled       bool
	readLimit      int
	writeLimit     int
	window         time.Duration
}

type MiddlewareOption func(*Middleware)

func WithMetrics(m *metrics.Metrics) MiddlewareOption {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) MiddlewareOption {
	return func(mw *Middleware) {
		mw.auditPublisher = publisher
	}
}

// NewMiddleware constructs the limiter middleware from config.
func NewMiddleware(store Store, cfg config.RateLimit, logger *slog.Logger, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		store:      store,
		logger:     logger,
		disabled:   cfg.Disabled,
		readLimit:  cfg.ReadLimit,
		writeLimit: cfg.WriteLimit,
		window:     cfg.Window,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Limit returns middleware enforcing the budget for the given endpoint class.
// The client is identified by IP alone so unauthenticated traffic is budgeted
// the same way as authenticated traffic.
func (m *Middleware) Limit(class EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.store.Allow(ctx, Key(class, ip), m.limitFor(class), m.window)
			if err != nil {
				// Fail open: an unreachable limiter store must not take the API down.
				m.logger.ErrorContext(ctx, "rate limit check failed",
					"error", err,
					"class", class,
					"ip_prefix", privacy.AnonymizeIP(ip),
				)
				m.metrics.IncrementCheckFailure()
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				m.rejected(r, class, ip)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "request budget exhausted, retry later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) limitFor(class EndpointClass) int {
	if class == ClassRead {
		return m.readLimit
	}
	return m.writeLimit
}

// rejected records a blocked request in the log, metrics, and audit trail.
// The raw IP never reaches the log line; the audit event keeps it for the
// security trail.
func (m *Middleware) rejected(r *http.Request, class EndpointClass, ip string) {
	ctx := r.Context()
	m.logger.WarnContext(ctx, "rate limit exceeded",
		"class", class,
		"path", r.URL.Path,
		"ip_prefix", privacy.AnonymizeIP(ip),
		"request_id", requestcontext.RequestID(ctx),
	)
	m.metrics.IncrementBlocked(string(class))
	if m.auditPublisher != nil {
		_ = m.auditPublisher.Emit(ctx, audit.Event{
			AccountID:   requestcontext.AccountID(ctx),
			Subject:     privacy.AnonymizeIP(ip),
			Action:      string(audit.EventRateLimitExceeded),
			RequestID:   requestcontext.RequestID(ctx),
			ClientIP:    ip,
			DeviceLabel: requestcontext.DeviceLabel(ctx),
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
