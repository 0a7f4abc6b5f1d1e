package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/domain/service"
)

// ContextKeyUserID is the echo.Context key the authenticated user ID is set under.
const ContextKeyUserID = "userID"

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Authorization bearer token and stores the
// caller's user ID on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthorized.WithDetails("Authorization header must carry a Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("token validation failed")
		}

		c.Set(ContextKeyUserID, claims.UserID)

		return next(c)
	}
}
