package controller

import (
	"fmt"
	"net/http"

	"github.com/vibast-solutions/ms-go-blog-auth/app/dto"
	httpdto "github.com/vibast-solutions/ms-go-blog-auth/app/dto/http"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AdminController serves the /admin routes. Role checks happen in the route
// policy before these handlers run.
type AdminController struct {
	userService service.UserService
}

func NewAdminController(userService service.UserService) *AdminController {
	return &AdminController{userService: userService}
}

func (c *AdminController) ToggleVerification(ctx echo.Context) error {
	userID, err := types.ParseUserID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	entry := logrus.WithField("user_id", userID)
	user, err := c.userService.ToggleVerification(ctx.Request().Context(), userID)
	if err != nil {
		return respondError(ctx, entry, "Toggle verification", err)
	}

	entry.WithField("verified", user.IsVerified).Info("Verification status changed")
	return ctx.JSON(http.StatusOK, httpdto.VerificationResponse{
		UserID:   user.ID,
		Verified: user.IsVerified,
		Message:  fmt.Sprintf("Verification status changed to: %t", user.IsVerified),
	})
}

func (c *AdminController) ListUsers(ctx echo.Context) error {
	req, err := types.NewListUsersRequestFromContext(ctx)
	if err != nil {
		return badRequest(ctx, "invalid pagination parameters")
	}
	if err = req.Validate(); err != nil {
		return badRequest(ctx, err.Error())
	}

	users, err := c.userService.ListUsers(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, logrus.NewEntry(logrus.StandardLogger()), "List users", err)
	}

	return ctx.JSON(http.StatusOK, httpdto.UserListResponse{
		Users:  dto.NewUserProfiles(users),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}
