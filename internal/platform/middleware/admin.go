package middleware

import (
	"log/slog"
	"net/http"

	"talentry/pkg/requestcontext"
	"talentry/pkg/secrets"
)

// RequireAdminToken guards operator endpoints. The config carries only a
// bcrypt hash of the admin token, so a leaked config cannot mint requests.
// Verification is constant-time by virtue of bcrypt itself.
func RequireAdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			if tokenHash == "" {
				logger.ErrorContext(ctx, "admin token not configured",
					"request_id", requestID,
				)
				writeForbidden(w)
				return
			}

			presented := r.Header.Get("X-Admin-Token")
			if err := secrets.Verify(presented, tokenHash); err != nil {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestID,
				)
				writeForbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin token required"}`))
}
