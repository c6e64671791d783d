package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type roleRow struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// RoleRepository はロールリポジトリのPostgreSQL実装
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository はRoleRepositoryを作成する
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByID はIDからロールを取得する
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*user.RoleDefinition, error) {
	var row roleRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, name FROM roles WHERE id = $1`, id); err != nil {
		// roles.id は SMALLINT なので範囲外の ID も存在しないロールとして扱う
		if errors.Is(err, sql.ErrNoRows) || isOutOfRange(err) {
			return nil, user.ErrRoleNotFound
		}
		return nil, fmt.Errorf("ロール取得に失敗しました: %w", err)
	}
	return &user.RoleDefinition{ID: row.ID, Name: user.Role(row.Name)}, nil
}

// List は全ロールを取得する
func (r *RoleRepository) List(ctx context.Context) ([]*user.RoleDefinition, error) {
	var rows []roleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM roles ORDER BY id`); err != nil {
		return nil, fmt.Errorf("ロール一覧取得に失敗しました: %w", err)
	}

	roles := make([]*user.RoleDefinition, len(rows))
	for i, row := range rows {
		roles[i] = &user.RoleDefinition{ID: row.ID, Name: user.Role(row.Name)}
	}
	return roles, nil
}

var _ user.RoleRepository = (*RoleRepository)(nil)
