package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type identifier interface {
	Identify(ctx context.Context, token string) (*service.Identity, error)
}

type AuthMiddleware struct {
	authService identifier
}

func NewAuthMiddleware(authService identifier) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate attaches the bearer token's identity to the request. Requests
// without a usable token continue anonymously. An expired token is rejected
// with 401 and a failing user or denylist store with 500.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return next(c)
		}

		identity, err := m.authService.Identify(c.Request().Context(), tokenString)
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			logrus.Debug("Rejecting expired access token")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "token_expired",
			})
		case service.IsTokenError(err):
			logrus.WithError(err).Debug("Ignoring unusable access token")
			return next(c)
		case err != nil:
			logrus.WithError(err).Error("Failed to resolve access token identity")
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "internal server error",
			})
		}

		SetIdentity(c, identity)
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
