package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessRole
)

// Rule grants access to requests whose method is in Methods (any method when
// empty) and whose path matches Pattern. A trailing "/**" matches the prefix
// itself and everything below it.
type Rule struct {
	Methods []string
	Pattern string
	Access  Access
	Role    string
}

func (r Rule) matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return matchPath(r.Pattern, path)
}

func matchPath(pattern, path string) bool {
	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == base || util.KeyMatch(path, base+"/*")
	}
	return util.KeyMatch(path, pattern)
}

// Policy evaluates rules top to bottom; the first match decides. Requests no
// rule matches need an authenticated identity.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

func DefaultRules() []Rule {
	return []Rule{
		{Methods: []string{http.MethodOptions}, Pattern: "/**", Access: AccessPublic},
		{Pattern: "/api/v1/auth/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet}, Pattern: "/api/v1/user/me", Access: AccessAuthenticated},
		{Methods: []string{http.MethodGet}, Pattern: "/api/v1/posts/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet}, Pattern: "/api/v1/feed/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet}, Pattern: "/api/v1/user/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet, http.MethodHead}, Pattern: "/profile-images/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet, http.MethodHead}, Pattern: "/post-images/**", Access: AccessPublic},
		{Methods: []string{http.MethodGet}, Pattern: "/health", Access: AccessPublic},
		{Methods: []string{http.MethodPost, http.MethodPut, http.MethodDelete}, Pattern: "/api/v1/posts/**", Access: AccessAuthenticated},
		{Pattern: "/api/v1/follow/**", Access: AccessAuthenticated},
		{Pattern: "/api/v1/admin/**", Access: AccessRole, Role: entity.RoleAdmin},
	}
}

// Evaluate returns nil when the identity may proceed, service.ErrUnauthorized
// when an identity is required but missing, and service.ErrForbidden when the
// identity lacks the required role.
func (p *Policy) Evaluate(method, path string, identity *service.Identity) error {
	rule := Rule{Access: AccessAuthenticated}
	for _, r := range p.rules {
		if r.matches(method, path) {
			rule = r
			break
		}
	}

	switch rule.Access {
	case AccessPublic:
		return nil
	case AccessRole:
		if identity == nil {
			return service.ErrUnauthorized
		}
		if identity.Role != rule.Role {
			return service.ErrForbidden
		}
		return nil
	default:
		if identity == nil {
			return service.ErrUnauthorized
		}
		return nil
	}
}

func (p *Policy) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		identity, _ := CurrentIdentity(c)

		err := p.Evaluate(req.Method, req.URL.Path, identity)
		switch {
		case err == nil:
			return next(c)
		case errors.Is(err, service.ErrForbidden):
			logrus.WithFields(logrus.Fields{
				"method":  req.Method,
				"path":    req.URL.Path,
				"user_id": identity.UserID,
			}).Info("Access denied for role")
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		default:
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
	}
}
