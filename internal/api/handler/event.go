package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventFields は作成・更新で共通の入力項目
type EventFields struct {
	Title       string `json:"title" query:"title" validate:"required,max=255" example:"Go Conference"`
	Description string `json:"description" query:"description" example:"年次カンファレンス"`
	Location    string `json:"location" query:"location" validate:"required,max=255" example:"Tokyo"`
	StartTime   string `json:"start_time" query:"start_time" validate:"required" example:"2025-12-31 18:00:00"`
	EndTime     string `json:"end_time" query:"end_time" example:"2025-12-31 21:00:00"`
	Capacity    *int   `json:"capacity" query:"capacity" validate:"omitempty,min=1" example:"300"`
}

type CreateEventRequest struct {
	EventFields
	CreatedBy string `json:"created_by" query:"created_by" validate:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type UpdateEventRequest struct {
	EventFields
	UserID string `json:"userId" query:"userId" validate:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type EventEnvelope struct {
	Message string         `json:"message" example:"Event created successfully"`
	Event   *EventResponse `json:"event"`
}

type EventListEnvelope struct {
	Message string           `json:"message" example:"Events retrieved successfully"`
	Events  []*EventResponse `json:"events"`
}

// toDetails は日時を解釈して event.Details に変換する
// 形式・前後関係のエラーは ve に追加する
func (f *EventFields) toDetails(ve *api.ValidationError) event.Details {
	d := event.Details{
		Title:       f.Title,
		Description: f.Description,
		Location:    f.Location,
		Capacity:    f.Capacity,
	}

	startOK := false
	if _, invalid := ve.Fields["start_time"]; !invalid && f.StartTime != "" {
		start, err := time.Parse(event.TimeLayout, f.StartTime)
		if err != nil {
			ve.Add("start_time", "The start_time does not match the format Y-m-d H:i:s.")
		} else {
			d.StartTime = start
			startOK = true
		}
	}

	if f.EndTime != "" {
		end, err := time.Parse(event.TimeLayout, f.EndTime)
		switch {
		case err != nil:
			ve.Add("end_time", "The end_time does not match the format Y-m-d H:i:s.")
		case startOK && end.Before(d.StartTime):
			ve.Add("end_time", "The end_time must be a date after or equal to start_time.")
		default:
			d.EndTime = &end
		}
	}
	return d
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します。created_by を省略すると呼び出し元が作成者になります
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventEnvelope
// @Failure 403 {object} api.ErrorResponse
// @Failure 422 {object} api.ValidationErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	ve, err := validateRequest(c, &req)
	if err != nil {
		return err
	}
	details := req.toDetails(ve)
	if ve.HasErrors() {
		return ve
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), middleware.CurrentUser(c), application.CreateEventInput{
		CreatedBy: req.CreatedBy,
		Details:   details,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return api.NewFieldError("created_by", "The selected created_by is invalid.")
		}
		return commonError(err)
	}
	return c.JSON(http.StatusCreated, EventEnvelope{
		Message: "Event created successfully",
		Event:   toEventResponse(e),
	})
}

// MyEvents godoc
// @Summary 作成したイベント一覧
// @Description userId を省略すると呼び出し元のイベントを返します。他人の指定は管理者のみ
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId query string false "ユーザーID"
// @Success 200 {object} EventListEnvelope
// @Failure 403 {object} api.ErrorResponse
// @Router /my-events [get]
func (h *EventHandler) MyEvents(c echo.Context) error {
	events, err := h.eventService.MyEvents(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("userId"))
	if err != nil {
		return commonError(err)
	}
	return c.JSON(http.StatusOK, EventListEnvelope{
		Message: "Events retrieved successfully",
		Events:  toEventResponses(events),
	})
}

// List godoc
// @Summary イベント一覧を取得
// @Description すべてのイベントを返します
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EventListEnvelope
// @Failure 401 {object} api.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EventListEnvelope{
		Message: "Events retrieved successfully",
		Events:  toEventResponses(events),
	})
}

// Update godoc
// @Summary イベントを更新
// @Description 作成者が一致するイベントの全項目を上書きします。一致しない場合は入力の検証より先に404
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Param request body UpdateEventRequest true "イベント情報"
// @Success 200 {object} EventEnvelope
// @Failure 404 {object} api.ErrorResponse
// @Failure 422 {object} api.ValidationErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req UpdateEventRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	actor := middleware.CurrentUser(c)
	if _, err := h.eventService.GetOwnedEvent(ctx, actor, c.Param("id"), req.UserID); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return notFound("Event not found")
		}
		return commonError(err)
	}

	ve, err := validateRequest(c, &req)
	if err != nil {
		return err
	}
	details := req.toDetails(ve)
	if ve.HasErrors() {
		return ve
	}

	e, err := h.eventService.UpdateEvent(ctx, actor, application.UpdateEventInput{
		ID:      c.Param("id"),
		UserID:  req.UserID,
		Details: details,
	})
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return notFound("Event not found")
		}
		return commonError(err)
	}
	return c.JSON(http.StatusOK, EventEnvelope{
		Message: "Event updated successfully",
		Event:   toEventResponse(e),
	})
}

// Delete godoc
// @Summary イベントを削除
// @Description 指定IDのイベントを削除します（管理者のみ）
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return notFound("Event not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}
