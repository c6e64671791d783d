package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/transaction"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

// ErrBookingBusy は予約ロックを取得できなかった場合のエラー
var ErrBookingBusy = errors.New("予約処理が混み合っています")

type BookingService struct {
	txManager   transaction.Manager
	bookingRepo booking.Repository
	eventRepo   event.Repository
	userRepo    user.Repository
	locker      booking.Locker
	metrics     *metrics.Metrics
}

// NewBookingService は BookingService を作成する
// locker が nil の場合はイベント行のロックのみで直列化する
func NewBookingService(txm transaction.Manager, br booking.Repository, er event.Repository, ur user.Repository, locker booking.Locker, m *metrics.Metrics) *BookingService {
	return &BookingService{txManager: txm, bookingRepo: br, eventRepo: er, userRepo: ur, locker: locker, metrics: m}
}

type CreateBookingInput struct {
	// UserID が空なら呼び出し元の予約になる
	UserID  string
	EventID string
	Seats   int
	Status  booking.Status
}

func (s *BookingService) CreateBooking(ctx context.Context, actor *user.User, input CreateBookingInput) (*booking.Booking, error) {
	b, err := s.createBooking(ctx, actor, input)
	s.metrics.RecordBooking(bookingOutcome(err))
	return b, err
}

func (s *BookingService) createBooking(ctx context.Context, actor *user.User, input CreateBookingInput) (*booking.Booking, error) {
	userID, err := resolveSubject(actor, input.UserID)
	if err != nil {
		return nil, err
	}
	if userID != actor.ID {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	b := booking.NewBooking(userID, input.EventID, input.Seats, input.Status)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if s.locker != nil {
		lock, err := s.locker.Lock(ctx, input.EventID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBookingBusy, err)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("予約ロックの解放に失敗しました", zap.String("event_id", input.EventID), zap.Error(err))
			}
		}()
	}

	// イベント行をロックしてから残席を数えるので、同時予約でも定員を超えない
	err = transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, tx, input.EventID)
		if err != nil {
			return err
		}
		if b.HoldsSeats() && ev.Capacity != nil {
			booked, err := s.bookingRepo.SumBookedSeats(ctx, tx, ev.ID)
			if err != nil {
				return err
			}
			if !ev.CanAccommodate(booked, b.Seats) {
				return booking.ErrInsufficientCapacity
			}
		}
		return s.bookingRepo.Create(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// DeleteBooking は予約を物理削除する
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	return s.bookingRepo.Delete(ctx, id)
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, booking.ErrInsufficientCapacity):
		return "capacity_exceeded"
	case errors.Is(err, ErrBookingBusy):
		return "lock_failed"
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, booking.ErrInvalidSeats),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrUserIDRequired),
		errors.Is(err, booking.ErrEventIDRequired):
		return "invalid"
	default:
		return "error"
	}
}
