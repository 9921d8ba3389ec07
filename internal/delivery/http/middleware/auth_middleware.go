package middleware

import (
	"errors"
	"strings"

	"talent-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxCallerIDKey = "caller_id"
	CtxServiceKey  = "caller_service"
)

// AuthMiddleware authenticates collaborator services by bearer token
// and enforces the scope the protected route group requires.
type AuthMiddleware struct {
	jwt   jwt.Service
	scope string
}

func NewAuthMiddleware(jwtSvc jwt.Service, scope string) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, scope: scope}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if m.scope != "" && !claims.Allows(m.scope) {
			return NewAppError(fiber.StatusForbidden, "Insufficient scope", nil, nil)
		}

		c.Locals(CtxCallerIDKey, claims.CallerID)
		c.Locals(CtxServiceKey, claims.Service)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
