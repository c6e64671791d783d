package application

import (
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

// resolveSubject は操作対象のユーザーIDを決定する
// 未指定なら呼び出し元自身。他人を指定できるのは管理者のみ
func resolveSubject(actor *user.User, requested string) (string, error) {
	if requested == "" || requested == actor.ID {
		return actor.ID, nil
	}
	if !actor.IsAdmin() {
		return "", auth.ErrForbidden
	}
	return requested, nil
}
