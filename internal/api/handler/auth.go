package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(s AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: s}
}

type RegisterRequest struct {
	Name     string `json:"name" query:"name" validate:"required,max=255" example:"Alice"`
	Email    string `json:"email" query:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Password string `json:"password" query:"password" validate:"required,min=6,max=72" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" query:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" query:"password" validate:"required" example:"secret123"`
}

// Register godoc
// @Summary ユーザー登録
// @Description ユーザーを attendee ロールで作成し、トークンを返します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "登録情報"
// @Success 201 {object} TokenResponse
// @Failure 422 {object} api.ValidationErrorResponse
// @Failure 429 {object} api.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyTaken) {
			return api.NewFieldError("email", "The email has already been taken.")
		}
		return commonError(err)
	}
	return c.JSON(http.StatusCreated, TokenResponse{Token: result.Token})
}

// Login godoc
// @Summary ログイン
// @Description 認証に成功するとトークンを返します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "認証情報"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 429 {object} api.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return errUnauthorized
		}
		return err
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: result.Token})
}

// Logout godoc
// @Summary ログアウト
// @Description 提示したトークンを失効させます
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return errUnauthorized
	}
	if err := h.service.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// Me godoc
// @Summary 認証中のユーザー
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return errUnauthorized
	}
	u, err := h.service.Me(c.Request().Context(), actor.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return errUnauthorized
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
