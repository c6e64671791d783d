package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, r.name AS role, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id
`

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *userRow) toEntity() *user.User {
	return &user.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         user.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// UserRepository はユーザーリポジトリのPostgreSQL実装
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository はUserRepositoryを作成する
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create は新しいユーザーを作成する
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, (SELECT id FROM roles WHERE name = $4), $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailAlreadyTaken
		}
		return fmt.Errorf("ユーザー作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからユーザーを取得する
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, userSelect+` WHERE u.id = $1`, id); err != nil {
		return nil, userLookupError(err)
	}
	return row.toEntity(), nil
}

// GetByEmail はメールアドレスからユーザーを取得する（大文字小文字を区別しない）
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, userSelect+` WHERE LOWER(u.email) = $1`, user.NormalizeEmail(email))
	if err != nil {
		return nil, userLookupError(err)
	}
	return row.toEntity(), nil
}

// ExistsByEmail はメールアドレスが登録済みかを返す
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)`
	if err := r.db.GetContext(ctx, &exists, query, user.NormalizeEmail(email)); err != nil {
		return false, fmt.Errorf("メールアドレス確認に失敗しました: %w", err)
	}
	return exists, nil
}

// List は全ユーザーを取得する
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, userSelect+` ORDER BY u.created_at, u.id`); err != nil {
		return nil, fmt.Errorf("ユーザー一覧取得に失敗しました: %w", err)
	}

	users := make([]*user.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toEntity()
	}
	return users, nil
}

// UpdateRole はユーザーのロールを更新する
func (r *UserRepository) UpdateRole(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET role_id = (SELECT id FROM roles WHERE name = $1), updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, string(u.Role), u.UpdatedAt, u.ID)
	if err != nil {
		if isInvalidID(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("ロール更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func userLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return user.ErrUserNotFound
	}
	return fmt.Errorf("ユーザー取得に失敗しました: %w", err)
}

var _ user.Repository = (*UserRepository)(nil)
