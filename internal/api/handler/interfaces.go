package handler

import (
	"context"

	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

// AuthServiceInterface は認証サービスのインターフェース
type AuthServiceInterface interface {
	Register(ctx context.Context, input application.RegisterInput) (*application.AuthResult, error)
	Login(ctx context.Context, input application.LoginInput) (*application.AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID string) (*user.User, error)
}

// UserServiceInterface はユーザーサービスのインターフェース
type UserServiceInterface interface {
	ListUsers(ctx context.Context) ([]*user.User, error)
	UpdateUserRole(ctx context.Context, userID string, roleID int) (*user.User, error)
}

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, actor *user.User, input application.CreateEventInput) (*event.Event, error)
	MyEvents(ctx context.Context, actor *user.User, userID string) ([]*event.Event, error)
	ListEvents(ctx context.Context) ([]*event.Event, error)
	GetOwnedEvent(ctx context.Context, actor *user.User, id, userID string) (*event.Event, error)
	UpdateEvent(ctx context.Context, actor *user.User, input application.UpdateEventInput) (*event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, actor *user.User, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}
