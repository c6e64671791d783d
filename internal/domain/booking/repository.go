package booking

import (
	"context"

	"github.com/sanosuguru/go-event-management-api/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// SumBookedSeats はイベントの booked 状態の座席数合計を返す（トランザクション必須）
	SumBookedSeats(ctx context.Context, tx transaction.Tx, eventID string) (int, error)

	// Delete は予約を物理削除する
	Delete(ctx context.Context, id string) error
}
