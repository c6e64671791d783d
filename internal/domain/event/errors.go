package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound     = errors.New("イベントが見つかりません")
	ErrTitleRequired     = errors.New("タイトルは必須です")
	ErrLocationRequired  = errors.New("開催場所は必須です")
	ErrStartTimeRequired = errors.New("開始時刻は必須です")
	ErrInvalidEventTime  = errors.New("終了時刻は開始時刻以降である必要があります")
	ErrInvalidCapacity   = errors.New("定員は1以上である必要があります")
	ErrCreatorRequired   = errors.New("作成者は必須です")
)
