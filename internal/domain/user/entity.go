package user

import (
	"strings"
	"time"
)

// Role はユーザーのロールを表す
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEventCreator Role = "event_creator"
	RoleAttendee     Role = "attendee"
)

// DefaultRole は新規登録ユーザーに割り当てられるロール
const DefaultRole = RoleAttendee

// IsValid は既知のロールかを返す
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEventCreator, RoleAttendee:
		return true
	}
	return false
}

// RoleDefinition は roles テーブルの1行を表す
type RoleDefinition struct {
	ID   int
	Name Role
}

// User はユーザーエンティティを表す
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser は新しいユーザーを作成する
func NewUser(name, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail はメールアドレスを比較用に正規化する
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.PasswordHash == "" {
		return ErrPasswordRequired
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// HasRole はユーザーが指定ロールのいずれかを持つかを返す
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin は管理者かを返す
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangeRole はロールを差し替える
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}
