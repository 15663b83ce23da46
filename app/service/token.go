package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"
	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Account type claim carried by identities without one, i.e. admins.
const defaultAccountTypeClaim = "ADMIN"

type Claims struct {
	Role        string `json:"role"`
	AccountType string `json:"accountType"`
	Verified    bool   `json:"verified"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 bearer tokens. Verification is
// self-contained given the signing secret; nothing is read from the store.
type TokenCodec struct {
	jwtCfg config.JWTConfig
	ttl    time.Duration
	skew   time.Duration
	now    func() time.Time
}

type TokenCodecOption func(*TokenCodec)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

func NewTokenCodec(cfg *config.Config, opts ...TokenCodecOption) *TokenCodec {
	codec := &TokenCodec{
		jwtCfg: cfg.JWT,
		ttl:    cfg.Tokens.AccessTTL,
		skew:   cfg.Tokens.ClockSkew,
		now:    time.Now,
	}
	if codec.ttl <= 0 {
		codec.ttl = config.TokenTTL
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

func (c *TokenCodec) Issue(user *entity.User) (string, error) {
	key, err := c.signingKey()
	if err != nil {
		return "", err
	}

	accountType := defaultAccountTypeClaim
	if user.AccountType.Valid && user.AccountType.String != "" {
		accountType = user.AccountType.String
	}

	now := c.now()
	claims := &Claims{
		Role:        user.Role,
		AccountType: accountType,
		Verified:    user.IsVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Verify checks the signature and time claims of a token and returns its claims.
// Errors are one of ErrTokenExpired, ErrTokenInvalidSignature, ErrTokenMalformed
// or ErrConfig.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	key, err := c.signingKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.skew),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %s", ErrTokenMalformed, err.Error())
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (c *TokenCodec) signingKey() ([]byte, error) {
	key, err := c.jwtCfg.SigningKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err.Error())
	}
	return key, nil
}
