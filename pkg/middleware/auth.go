package middleware

import (
	"net/http"
	"strings"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth validates the bearer JWT and puts the caller's identity and role on
// the request context. The token is stateless; no session lookup happens.
func Auth(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(config, parts[1])
			if err != nil {
				logger.Warn("Token rejected", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				logger.Warn("Token carries malformed user ID", zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Username, entity.ParseRole(claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the enumerated role set by Auth.
func RequireRole(role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if callerRole != role {
				logger.Warn("Role check failed",
					zap.String("required", string(role)),
					zap.String("actual", string(callerRole)),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Unauthorized - "+string(role)+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
