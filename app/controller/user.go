package controller

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-blog-auth/app/dto"
	"github.com/vibast-solutions/ms-go-blog-auth/app/middleware"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) Me(ctx echo.Context) error {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		return respondError(ctx, logrus.NewEntry(logrus.StandardLogger()), "Get profile", service.ErrUnauthorized)
	}

	entry := logrus.WithField("user_id", identity.UserID)
	user, err := c.userService.Profile(ctx.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(ctx, entry, "Get profile", err)
	}

	return ctx.JSON(http.StatusOK, dto.NewUserProfile(user))
}

func (c *UserController) UpdateMe(ctx echo.Context) error {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		return respondError(ctx, logrus.NewEntry(logrus.StandardLogger()), "Update profile", service.ErrUnauthorized)
	}

	req, err := types.NewUpdateProfileRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update profile request")
		return badRequest(ctx, "invalid request body")
	}
	if err = req.Validate(); err != nil {
		logrus.WithField("user_id", identity.UserID).Debug("Update profile validation failed")
		return badRequest(ctx, err.Error())
	}

	entry := logrus.WithField("user_id", identity.UserID)
	user, err := c.userService.UpdateProfile(ctx.Request().Context(), identity.UserID, req)
	if err != nil {
		return respondError(ctx, entry, "Update profile", err)
	}

	entry.Info("Profile updated")
	return ctx.JSON(http.StatusOK, dto.NewUserProfile(user))
}

func (c *UserController) GetUser(ctx echo.Context) error {
	userID, err := types.ParseUserID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	user, err := c.userService.Profile(ctx.Request().Context(), userID)
	if err != nil {
		return respondError(ctx, logrus.WithField("user_id", userID), "Get user", err)
	}

	return ctx.JSON(http.StatusOK, dto.NewUserProfile(user))
}

// Search returns profiles whose first or last name contains the query.
func (c *UserController) Search(ctx echo.Context) error {
	users, err := c.userService.SearchUsers(ctx.Request().Context(), ctx.QueryParam("query"))
	if err != nil {
		return respondError(ctx, logrus.NewEntry(logrus.StandardLogger()), "Search users", err)
	}
	return ctx.JSON(http.StatusOK, dto.NewUserProfiles(users))
}

func (c *UserController) Suggestions(ctx echo.Context) error {
	users, err := c.userService.SuggestTeachers(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, logrus.NewEntry(logrus.StandardLogger()), "Suggest teachers", err)
	}
	return ctx.JSON(http.StatusOK, dto.NewUserProfiles(users))
}
