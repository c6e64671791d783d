package auth

import (
	"errors"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

// ErrForbidden はロールが許可セットに含まれない場合のエラー
var ErrForbidden = errors.New("このルートを利用する権限がありません")

// Authorize は role が allowed のいずれかと完全一致すれば nil を返す
// ロールの継承や階層は持たない
func Authorize(role user.Role, allowed ...user.Role) error {
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return ErrForbidden
}
