package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/http/validator"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

type principalKey struct{}

type AuthMiddleware struct {
	tokenService outbound.TokenService
	logger       logger.Logger
}

func NewAuthMiddleware(tokenService outbound.TokenService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       log,
	}
}

// RequireAuth verifies the bearer token and puts the caller's Principal on the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.FromError(w, domainerr.ErrUnauthenticated("Authorization header required"))
			return
		}

		// Extract Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || !validator.ValidateJWT(parts[1]) {
			response.FromError(w, domainerr.ErrInvalidToken("Invalid authorization header format"))
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			logger.LogSecurityEvent(r.Context(), m.logger, "invalid_token", "LOW", map[string]interface{}{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			response.FromError(w, domainerr.ErrInvalidToken("Invalid or expired token"))
			return
		}

		role := valueobject.Role(claims.Role)
		if !role.Valid() {
			response.FromError(w, domainerr.ErrInvalidToken("Unknown role"))
			return
		}

		principal := valueobject.NewPrincipal(claims.UserID, claims.Email, role)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func WithPrincipal(ctx context.Context, p *valueobject.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns nil when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *valueobject.Principal {
	if p, ok := ctx.Value(principalKey{}).(*valueobject.Principal); ok {
		return p
	}
	return nil
}
