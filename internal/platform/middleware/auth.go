package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"talentry/internal/device"
	"talentry/internal/token"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/privacy"
	"talentry/pkg/requestcontext"
)

// TokenValidator validates access tokens. *token.Service satisfies it.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// RequireAuth guards write endpoints: it validates the bearer token, parses
// the account ID into the request context, and checks the token's device
// fingerprint against the presenting client. Fingerprint drift is logged but
// does not reject the request; a stolen token is the auth layer's problem,
// drift is a signal for the audit trail.
func RequireAuth(validator TokenValidator, devices *device.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			rawToken, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(rawToken)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			accountID, err := id.ParseAccountID(claims.AccountID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed account claim",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if devices != nil {
				current := devices.ComputeFingerprint(r.Header.Get("User-Agent"))
				if _, drift := devices.CompareFingerprints(claims.DeviceFingerprint, current); drift {
					logger.WarnContext(ctx, "device fingerprint drift",
						"account_id", accountID.String(),
						"client_ip", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
						"request_id", requestID,
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAccountID(ctx, accountID)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
