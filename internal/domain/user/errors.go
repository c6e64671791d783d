package user

import "errors"

// User ドメインのエラー定義
var (
	ErrUserNotFound       = errors.New("ユーザーが見つかりません")
	ErrRoleNotFound       = errors.New("ロールが見つかりません")
	ErrEmailAlreadyTaken  = errors.New("メールアドレスは既に使用されています")
	ErrNameRequired       = errors.New("名前は必須です")
	ErrEmailRequired      = errors.New("メールアドレスは必須です")
	ErrPasswordRequired   = errors.New("パスワードは必須です")
	ErrInvalidRole        = errors.New("不正なロールです")
	ErrInvalidCredentials = errors.New("認証情報が正しくありません")
)
