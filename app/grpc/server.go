package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuthServer lets internal services resolve bearer tokens without sharing the
// signing key.
type AuthServer struct {
	authService service.AuthService
}

func NewAuthServer(authService service.AuthService) *AuthServer {
	return &AuthServer{authService: authService}
}

func (s *AuthServer) ValidateToken(ctx context.Context, req *types.ValidateTokenRequest) (*types.ValidateTokenResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.Debug("Validate token validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	identity, err := s.authService.Identify(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			logrus.Debug("Validate token failed: expired (grpc)")
			return nil, status.Error(codes.Unauthenticated, "token_expired")
		case service.IsTokenError(err):
			logrus.Debug("Validate token failed: invalid token (grpc)")
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		logrus.WithError(err).Error("Validate token failed (grpc)")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	logrus.WithField("user_id", identity.UserID).Debug("Validate token succeeded (grpc)")
	return identityResponse(identity), nil
}

func (s *AuthServer) Authenticate(ctx context.Context, req *types.AuthenticateRequest) (*types.AuthenticationResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Authenticate validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logrus.WithField("email", req.Email).Info("Authenticate request received (grpc)")
	res, err := s.authService.Authenticate(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Authenticate failed: invalid credentials (grpc)")
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Authenticate failed (grpc)")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	logrus.WithField("email", req.Email).Info("Authentication successful (grpc)")
	return res, nil
}

// CurrentUser describes the caller identified by IdentityUnaryInterceptor.
func (s *AuthServer) CurrentUser(ctx context.Context, _ *types.CurrentUserRequest) (*types.ValidateTokenResponse, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return identityResponse(identity), nil
}

func identityResponse(identity *service.Identity) *types.ValidateTokenResponse {
	return &types.ValidateTokenResponse{
		UserID:      identity.UserID,
		Email:       identity.Email,
		Role:        identity.Role,
		AccountType: identity.AccountType,
		Verified:    identity.Verified,
		ExpiresAt:   identity.ExpiresAt.Unix(),
	}
}
