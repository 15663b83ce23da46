package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/sirupsen/logrus"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type identityKey struct{}

type identifier interface {
	Identify(ctx context.Context, token string) (*service.Identity, error)
}

// IdentityUnaryInterceptor resolves the bearer token in the "authorization"
// metadata the same way the HTTP gate does. Calls without a usable token
// continue anonymously. An expired token is rejected as Unauthenticated and
// a failing user or denylist store as Internal.
func IdentityUnaryInterceptor(authService identifier) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		token := incomingBearerToken(ctx)
		if token == "" {
			return handler(ctx, req)
		}

		identity, err := authService.Identify(ctx, token)
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			return nil, status.Error(codes.Unauthenticated, "token_expired")
		case service.IsTokenError(err):
			logrus.WithError(err).WithField("method", info.FullMethod).Debug("Ignoring unusable bearer token (grpc)")
			return handler(ctx, req)
		case err != nil:
			logrus.WithError(err).WithField("method", info.FullMethod).Error("Failed to resolve bearer token identity (grpc)")
			return nil, status.Error(codes.Internal, "internal server error")
		}

		return handler(context.WithValue(ctx, identityKey{}, identity), req)
	}
}

// IdentityFromContext returns the identity attached by IdentityUnaryInterceptor.
func IdentityFromContext(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*service.Identity)
	return identity, ok && identity != nil
}

func incomingBearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(values[0]), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
