package handler

import (
	"time"

	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

// MessageResponse はメッセージのみのレスポンス
type MessageResponse struct {
	Message string `json:"message" example:"Event deleted successfully"`
}

// TokenResponse は登録・ログインのレスポンス
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UserResponse はユーザー情報。パスワードハッシュは含めない
type UserResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"Alice"`
	Email     string `json:"email" example:"alice@example.com"`
	Role      string `json:"role" example:"attendee"`
	CreatedAt string `json:"created_at" example:"2025-12-06T10:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2025-12-06T10:00:00Z"`
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

type EventResponse struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string  `json:"title" example:"Go Conference"`
	Description *string `json:"description" example:"年次カンファレンス"`
	Location    string  `json:"location" example:"Tokyo"`
	StartTime   string  `json:"start_time" example:"2025-12-31 18:00:00"`
	EndTime     *string `json:"end_time" example:"2025-12-31 21:00:00"`
	Capacity    *int    `json:"capacity" example:"300"`
	CreatedBy   string  `json:"created_by" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt   string  `json:"created_at" example:"2025-12-06T10:00:00Z"`
	UpdatedAt   string  `json:"updated_at" example:"2025-12-06T10:00:00Z"`
}

func toEventResponse(e *event.Event) *EventResponse {
	resp := &EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Location:  e.Location,
		StartTime: e.StartTime.Format(event.TimeLayout),
		Capacity:  e.Capacity,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Description != "" {
		desc := e.Description
		resp.Description = &desc
	}
	if e.EndTime != nil {
		end := e.EndTime.Format(event.TimeLayout)
		resp.EndTime = &end
	}
	return resp
}

func toEventResponses(events []*event.Event) []*EventResponse {
	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return responses
}

type BookingResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID   string `json:"event_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Seats     int    `json:"seats" example:"2"`
	Status    string `json:"status" example:"booked"`
	CreatedAt string `json:"created_at" example:"2025-12-06T10:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2025-12-06T10:00:00Z"`
}

func toBookingResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		EventID:   b.EventID,
		Seats:     b.Seats,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}
