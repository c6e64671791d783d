package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound      = errors.New("予約が見つかりません")
	ErrUserIDRequired       = errors.New("ユーザーIDは必須です")
	ErrEventIDRequired      = errors.New("イベントIDは必須です")
	ErrInvalidSeats         = errors.New("座席数は1以上である必要があります")
	ErrInvalidStatus        = errors.New("状態は booked か canceled である必要があります")
	ErrInsufficientCapacity = errors.New("イベントの残席が不足しています")
)
