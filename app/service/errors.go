package service

import "errors"

var (
	ErrConfig                = errors.New("invalid token signing configuration")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrDuplicateEmail        = errors.New("email is already registered")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidResetToken     = errors.New("invalid reset token")
	ErrResetTokenExpired     = errors.New("reset token has expired")
	ErrEmailDeliveryFailed   = errors.New("failed to send email")
	ErrWeakPassword          = errors.New("password does not meet policy requirements")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
)

// IsTokenError reports whether err means the presented token is unusable, as
// opposed to a failure of the stores behind identity resolution. Expiry is
// reported separately by ErrTokenExpired.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenInvalidSignature) ||
		errors.Is(err, ErrUnauthorized)
}
