// Package httpapi assembles the public HTTP surface: the middleware chain,
// the module route groups, and the operational endpoints. Business logic
// stays in the module handlers; this package only decides what wraps what.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talentry/internal/device"
	directoryhandler "talentry/internal/directory/handler"
	matchinghandler "talentry/internal/matching/handler"
	opportunityhandler "talentry/internal/opportunity/handler"
	organizationhandler "talentry/internal/organization/handler"
	"talentry/internal/platform/metrics"
	"talentry/internal/platform/middleware"
	"talentry/internal/ratelimit"
	talenthandler "talentry/internal/talent/handler"
	"talentry/pkg/platform/httputil"
)

// Check probes one backing dependency for the readiness endpoint.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Deps carries everything the router mounts. Handlers register their own
// routes; the router owns the middleware chain and the route groups.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.HTTP
	Tokens         middleware.TokenValidator
	Devices        *device.Service
	AdminTokenHash string
	Limiter        *ratelimit.Middleware

	Talent       *talenthandler.Handler
	Opportunity  *opportunityhandler.Handler
	Organization *organizationhandler.Handler
	Matching     *matchinghandler.Handler
	Directory    *directoryhandler.Handler

	Readiness []Check
}

// New assembles the full router. Reads and writes sit in separate groups so
// each endpoint class gets its own rate budget; the operator surface swaps
// caller auth for the admin token.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	// Operational endpoints stay outside the API chain so probes are cheap
	// and do not show up in the access log.
	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(deps.Logger, deps.Readiness))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.Devices, deps.Logger)

	r.Group(func(api chi.Router) {
		api.Use(middleware.RequestID)
		api.Use(middleware.RequestTime)
		api.Use(middleware.ClientMetadata)
		api.Use(middleware.Recovery(deps.Logger))
		api.Use(middleware.AccessLog(deps.Logger))
		api.Use(deps.Metrics.Middleware())

		// Read surface: the directory and the match matrix.
		api.Group(func(gr chi.Router) {
			gr.Use(deps.Limiter.Limit(ratelimit.ClassRead))
			gr.Use(requireAuth)
			deps.Directory.Register(gr)
		})

		// Write surface: each module's mutations on the caller's own records.
		api.Group(func(gr chi.Router) {
			gr.Use(deps.Limiter.Limit(ratelimit.ClassWrite))
			gr.Use(requireAuth)
			gr.Use(chimiddleware.AllowContentType("application/json"))
			deps.Talent.Register(gr)
			deps.Opportunity.Register(gr)
			deps.Organization.Register(gr)
			deps.Matching.Register(gr)
		})

		// Operator surface: admin token instead of caller tokens.
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(deps.Limiter.Limit(ratelimit.ClassWrite))
			ar.Use(middleware.RequireAdminToken(deps.AdminTokenHash, deps.Logger))
			deps.Organization.RegisterAdmin(ar)
		})
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports 503 as soon as one dependency probe fails so the load
// balancer drains the instance before requests start erroring.
func handleReadyz(logger *slog.Logger, checks []Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if check.Probe == nil {
				continue
			}
			if err := check.Probe(ctx); err != nil {
				logger.ErrorContext(ctx, "readiness probe failed",
					"dependency", check.Name,
					"error", err,
				)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":     "unavailable",
					"dependency": check.Name,
				})
				return
			}
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
