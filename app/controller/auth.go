package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-blog-auth/app/dto/http"
	"github.com/vibast-solutions/ms-go-blog-auth/app/middleware"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Register(ctx echo.Context) error {
	req, err := types.NewRegisterRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return badRequest(ctx, "invalid request body")
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return badRequest(ctx, err.Error())
	}

	entry := logrus.WithField("email", req.Email)
	entry.Info("Register request received")
	res, err := c.authService.Register(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, entry, "Register", err)
	}

	entry.Info("User registered")
	return ctx.JSON(http.StatusOK, httpdto.AuthenticationResponse{Token: res.Token})
}

func (c *AuthController) Authenticate(ctx echo.Context) error {
	req, err := types.NewAuthenticateRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind authenticate request")
		return badRequest(ctx, "invalid request body")
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Authenticate validation failed")
		return badRequest(ctx, err.Error())
	}

	entry := logrus.WithField("email", req.Email)
	entry.Info("Authenticate request received")
	res, err := c.authService.Authenticate(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, entry, "Authenticate", err)
	}

	entry.Info("Authentication successful")
	return ctx.JSON(http.StatusOK, httpdto.AuthenticationResponse{Token: res.Token})
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	req, err := types.NewForgotPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind forgot password request")
		return badRequest(ctx, "invalid request body")
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Forgot password validation failed")
		return badRequest(ctx, err.Error())
	}

	entry := logrus.WithField("email", req.Email)
	entry.Info("Password reset requested")
	if err = c.authService.RequestPasswordReset(ctx.Request().Context(), req); err != nil {
		return respondError(ctx, entry, "Password reset request", err)
	}

	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "Password reset link sent to your email."})
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	req, err := types.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return badRequest(ctx, "invalid request body")
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Reset password validation failed")
		return badRequest(ctx, err.Error())
	}

	entry := logrus.NewEntry(logrus.StandardLogger())
	entry.Info("Reset password request received")
	if err = c.authService.ResetPassword(ctx.Request().Context(), req); err != nil {
		return respondError(ctx, entry, "Reset password", err)
	}

	entry.Info("Password reset successful")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "Password successfully reset."})
}

// Logout revokes the caller's token when revocation is enabled. Anonymous
// callers get the same response.
func (c *AuthController) Logout(ctx echo.Context) error {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "logged out successfully"})
	}

	entry := logrus.WithField("user_id", identity.UserID)
	if err := c.authService.Logout(ctx.Request().Context(), identity); err != nil {
		return respondError(ctx, entry, "Logout", err)
	}

	entry.Info("Logout successful")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "logged out successfully"})
}
