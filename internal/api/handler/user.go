package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(s UserServiceInterface) *UserHandler {
	return &UserHandler{service: s}
}

// UpdateRoleRequest は数値・文字列どちらの roleId も受け付ける
type UpdateRoleRequest struct {
	RoleID json.Number `json:"roleId" query:"roleId" validate:"required" example:"2"`
}

type UserRoleResponse struct {
	Message string        `json:"message" example:"User role updated successfully"`
	User    *UserResponse `json:"user"`
}

// List godoc
// @Summary ユーザー一覧
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateRole godoc
// @Summary ユーザーのロールを変更
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ユーザーID"
// @Param request body UpdateRoleRequest true "ロールID"
// @Success 200 {object} UserRoleResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 422 {object} api.ValidationErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	invalidRole := api.NewFieldError("roleId", "The selected roleId is invalid.")
	// roles.id は SMALLINT
	roleID, err := strconv.Atoi(req.RoleID.String())
	if err != nil || roleID < 1 || roleID > math.MaxInt16 {
		return invalidRole
	}

	u, err := h.service.UpdateUserRole(c.Request().Context(), c.Param("id"), roleID)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrRoleNotFound), errors.Is(err, user.ErrInvalidRole):
			return invalidRole
		case errors.Is(err, user.ErrUserNotFound):
			return notFound("User not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, UserRoleResponse{
		Message: "User role updated successfully",
		User:    toUserResponse(u),
	})
}
