package types

import (
	"strings"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"
)

type RegisterRequest struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

func NewRegisterRequestFromContext(ctx echo.Context) (*RegisterRequest, error) {
	var body RegisterRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.AccountType = strings.ToUpper(strings.TrimSpace(body.AccountType))

	return &body, nil
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Firstname, validation.Length(0, 100)),
		validation.Field(&r.Lastname, validation.Length(0, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&r.AccountType, validation.In(entity.AccountTypeStudent, entity.AccountTypeTeacher)),
	)
}

type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthenticateRequestFromContext(ctx echo.Context) (*AuthenticateRequest, error) {
	var body AuthenticateRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func NewForgotPasswordRequestFromContext(ctx echo.Context) (*ForgotPasswordRequest, error) {
	var body ForgotPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	var body ResetPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(1, 72)),
	)
}

// ValidateTokenRequest is the gRPC payload used by other services to resolve a
// bearer token into an identity.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

func (r ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// CurrentUserRequest carries no fields; the caller is identified by the
// bearer token in the call metadata.
type CurrentUserRequest struct{}

type AuthenticationResponse struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	UserID      uint64 `json:"userId"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccountType string `json:"accountType,omitempty"`
	Verified    bool   `json:"verified"`
	ExpiresAt   int64  `json:"expiresAt"`
}
