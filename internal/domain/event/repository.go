package event

import (
	"context"

	"github.com/sanosuguru/go-event-management-api/internal/domain/transaction"
)

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを作成する
	Create(ctx context.Context, event *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id string) (*Event, error)

	// GetByIDForUpdate はトランザクション内で行ロックを取得してイベントを取得する
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*Event, error)

	// GetByIDAndOwner は作成者が一致する場合のみイベントを取得する
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Event, error)

	// List は全イベントを取得する
	List(ctx context.Context) ([]*Event, error)

	// ListByOwner は作成者のイベント一覧を取得する
	ListByOwner(ctx context.Context, ownerID string) ([]*Event, error)

	// Update は作成者が一致するイベントを上書き更新する
	Update(ctx context.Context, event *Event) error

	// Delete はイベントを削除する
	Delete(ctx context.Context, id string) error
}
