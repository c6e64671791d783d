package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	UserID  string `json:"user_id" query:"user_id" validate:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID string `json:"event_id" query:"event_id" validate:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Seats   int    `json:"seats" query:"seats" validate:"required,min=1" example:"2"`
	Status  string `json:"status" query:"status" validate:"required,oneof=booked canceled" example:"booked"`
}

type BookingEnvelope struct {
	Message string           `json:"message" example:"Booking created successfully"`
	Booking *BookingResponse `json:"booking"`
}

// Create godoc
// @Summary 予約を作成
// @Description user_id を省略すると呼び出し元の予約になります。定員を超える予約は422
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingEnvelope
// @Failure 403 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "同じイベントの予約が処理中"
// @Failure 422 {object} api.ValidationErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.CreateBooking(c.Request().Context(), middleware.CurrentUser(c), application.CreateBookingInput{
		UserID:  req.UserID,
		EventID: req.EventID,
		Seats:   req.Seats,
		Status:  booking.Status(req.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return api.NewFieldError("user_id", "The selected user_id is invalid.")
		case errors.Is(err, event.ErrEventNotFound):
			return api.NewFieldError("event_id", "The selected event_id is invalid.")
		case errors.Is(err, application.ErrBookingBusy):
			return echo.NewHTTPError(http.StatusConflict, "Booking is in progress for this event, please retry").SetInternal(err)
		}
		return commonError(err)
	}
	return c.JSON(http.StatusCreated, BookingEnvelope{
		Message: "Booking created successfully",
		Booking: toBookingResponse(b),
	})
}

// Get godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return notFound("Booking not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Delete godoc
// @Summary 予約をキャンセル
// @Description 予約を物理削除します
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return notFound("Booking not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Booking canceled successfully"})
}
