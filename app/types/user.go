package types

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewUpdateProfileRequestFromContext(ctx echo.Context) (*UpdateProfileRequest, error) {
	var body UpdateProfileRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
	)
}

type ListUsersRequest struct {
	Limit  int
	Offset int
}

func NewListUsersRequestFromContext(ctx echo.Context) (*ListUsersRequest, error) {
	req := &ListUsersRequest{Limit: defaultListLimit}

	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}

func (r ListUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit, validation.Min(1), validation.Max(maxListLimit)),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// ParseUserID reads a positive numeric id from the named path parameter.
func ParseUserID(ctx echo.Context, param string) (uint64, error) {
	return strconv.ParseUint(ctx.Param(param), 10, 64)
}
