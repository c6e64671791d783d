package booking

import "context"

// Lock は取得済みのイベント単位ロック
type Lock interface {
	Release(ctx context.Context) error
}

// Locker はイベント単位で予約処理を直列化する
type Locker interface {
	Lock(ctx context.Context, eventID string) (Lock, error)
}
