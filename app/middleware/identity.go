package middleware

import (
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

func SetIdentity(c echo.Context, identity *service.Identity) {
	c.Set(identityContextKey, identity)
}

// CurrentIdentity returns the identity established for this request, if any.
func CurrentIdentity(c echo.Context) (*service.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*service.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
