package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/transaction"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

const (
	bookingsUserFK  = "bookings_user_id_fkey"
	bookingsEventFK = "bookings_event_id_fkey"
)

type bookingRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	EventID   string    `db:"event_id"`
	Seats     int       `db:"seats"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		Seats:     r.Seats,
		Status:    booking.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// BookingRepository は予約リポジトリのPostgreSQL実装
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create は新しい予約を作成する
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (user_id, event_id, seats, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = sqlxTx.QueryRowContext(ctx, query,
		b.UserID, b.EventID, b.Seats, string(b.Status), b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if constraint, ok := foreignKeyConstraint(err); ok {
			switch constraint {
			case bookingsUserFK:
				return user.ErrUserNotFound
			case bookingsEventFK:
				return event.ErrEventNotFound
			}
		}
		return fmt.Errorf("予約作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDから予約を取得する
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT id, user_id, event_id, seats, status, created_at, updated_at FROM bookings WHERE id = $1`

	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// SumBookedSeats はイベントの booked 状態の座席数合計を返す
func (r *BookingRepository) SumBookedSeats(ctx context.Context, tx transaction.Tx, eventID string) (int, error) {
	sqlxTx, err := unwrapTx(tx)
	if err != nil {
		return 0, err
	}

	query := `SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE event_id = $1 AND status = $2`

	var total int
	if err := sqlxTx.GetContext(ctx, &total, query, eventID, string(booking.StatusBooked)); err != nil {
		return 0, fmt.Errorf("予約座席数の集計に失敗しました: %w", err)
	}
	return total, nil
}

// Delete は予約を物理削除する
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return booking.ErrBookingNotFound
		}
		return fmt.Errorf("予約削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

var _ booking.Repository = (*BookingRepository)(nil)
