package user

import "context"

// Repository はユーザーリポジトリのインターフェース
type Repository interface {
	// Create は新しいユーザーを作成する（メール重複時は ErrEmailAlreadyTaken）
	Create(ctx context.Context, user *User) error

	// GetByID はIDからユーザーを取得する
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail はメールアドレスからユーザーを取得する
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail はメールアドレスが登録済みかを返す
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List は全ユーザーを取得する
	List(ctx context.Context) ([]*User, error)

	// UpdateRole はユーザーのロールを更新する
	UpdateRole(ctx context.Context, user *User) error
}

// RoleRepository はロールリポジトリのインターフェース
type RoleRepository interface {
	// GetByID はIDからロールを取得する
	GetByID(ctx context.Context, id int) (*RoleDefinition, error)

	// List は全ロールを取得する
	List(ctx context.Context) ([]*RoleDefinition, error)
}
