package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-blog-auth/app/dto/http"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatusForError maps a service error to the HTTP status and message returned
// to clients. Unknown errors become a 500 without detail.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict, service.ErrDuplicateEmail.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, service.ErrUserNotFound.Error()
	case errors.Is(err, service.ErrInvalidResetToken):
		return http.StatusBadRequest, service.ErrInvalidResetToken.Error()
	case errors.Is(err, service.ErrResetTokenExpired):
		return http.StatusBadRequest, service.ErrResetTokenExpired.Error()
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrEmailDeliveryFailed):
		return http.StatusBadGateway, service.ErrEmailDeliveryFailed.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(ctx echo.Context, entry *logrus.Entry, action string, err error) error {
	status, message := StatusForError(err)
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error(action + " failed")
	} else {
		entry.WithField("reason", message).Warn(action + " failed")
	}
	return ctx.JSON(status, httpdto.ErrorResponse{Error: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: message})
}
