package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"
	"github.com/vibast-solutions/ms-go-blog-auth/app/repository"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"
	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	SetResetToken(ctx context.Context, userID uint64, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, userID uint64, token, passwordHash string) (int64, error)
}

type tokenDenylist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID      uint64
	Email       string
	Role        string
	AccountType string
	Verified    bool
	TokenID     string
	ExpiresAt   time.Time
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == entity.RoleAdmin
}

type AuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthenticationResponse, error)
	Authenticate(ctx context.Context, req *types.AuthenticateRequest) (*types.AuthenticationResponse, error)
	RequestPasswordReset(ctx context.Context, req *types.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error
	Logout(ctx context.Context, identity *Identity) error
	Identify(ctx context.Context, token string) (*Identity, error)
}

type AuthServiceOption func(*authService)

// WithDenylist enables token revocation. Without it logout is a no-op and
// tokens stay valid until they expire.
func WithDenylist(denylist tokenDenylist) AuthServiceOption {
	return func(s *authService) {
		s.denylist = denylist
	}
}

func WithPasswordHasher(hasher PasswordHasher) AuthServiceOption {
	return func(s *authService) {
		if hasher != nil {
			s.hasher = hasher
		}
	}
}

func WithNow(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		if now != nil {
			s.now = now
		}
	}
}

type authService struct {
	userRepo userRepository
	codec    *TokenCodec
	mailer   Mailer
	cfg      *config.Config
	hasher   PasswordHasher
	denylist tokenDenylist
	now      func() time.Time
}

func NewAuthService(
	userRepo userRepository,
	codec *TokenCodec,
	mailer Mailer,
	cfg *config.Config,
	opts ...AuthServiceOption,
) AuthService {
	svc := &authService{
		userRepo: userRepo,
		codec:    codec,
		mailer:   mailer,
		cfg:      cfg,
		hasher:   NewBcryptHasher(0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *authService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthenticationResponse, error) {
	email := NormalizeEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	if err = s.cfg.Password.Policy.Validate(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &entity.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
		AccountType:  sql.NullString{String: req.AccountType, Valid: req.AccountType != ""},
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	return &types.AuthenticationResponse{Token: token}, nil
}

// Authenticate reports ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *authService) Authenticate(ctx context.Context, req *types.AuthenticateRequest) (*types.AuthenticationResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err = s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	return &types.AuthenticationResponse{Token: token}, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, req *types.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	ttl := s.cfg.Tokens.ResetTTL
	if ttl <= 0 {
		ttl = config.ResetTokenTTL
	}

	resetToken := uuid.NewString()
	if err = s.userRepo.SetResetToken(ctx, user.ID, resetToken, s.now().Add(ttl)); err != nil {
		return err
	}

	link := s.cfg.Frontend.ResetPasswordLink(resetToken)
	if err = s.mailer.SendResetEmail(ctx, user.Email, link); err != nil {
		return fmt.Errorf("%w: %s", ErrEmailDeliveryFailed, err.Error())
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	if !user.ResetTokenExpiresAt.Valid || !s.now().Before(user.ResetTokenExpiresAt.Time) {
		return ErrResetTokenExpired
	}

	if err = s.cfg.Password.Policy.Validate(req.NewPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	// The hash and the cleared token land in one row update; losing a race
	// against a concurrent reset leaves zero rows affected.
	affected, err := s.userRepo.ConsumeResetToken(ctx, user.ID, req.Token, hashedPassword)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidResetToken
	}

	return nil
}

func (s *authService) Logout(ctx context.Context, identity *Identity) error {
	if s.denylist == nil || identity == nil || identity.TokenID == "" {
		return nil
	}

	ttl := identity.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	return s.denylist.Add(ctx, identity.TokenID, ttl)
}

// Identify verifies a bearer token and resolves it against the store, so the
// returned role and verified flag are the current ones rather than the values
// embedded at issuance.
func (s *authService) Identify(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil {
		revoked, err := s.denylist.Contains(ctx, claims.ID)
		if err != nil {
			logrus.WithError(err).Warn("Token denylist lookup failed")
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", ErrTokenMalformed)
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	identity := &Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Verified: user.IsVerified,
		TokenID:  claims.ID,
	}
	if user.AccountType.Valid {
		identity.AccountType = user.AccountType.String
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	return identity, nil
}
