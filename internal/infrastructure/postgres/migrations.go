package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// RunMigrations は migrationsPath 配下の未適用マイグレーションを適用し、適用後のスキーマバージョンを返す
// 前回の適用が途中で失敗している（dirty）場合はエラーにする
func RunMigrations(db *sqlx.DB, migrationsPath string) (uint, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("マイグレーションドライバーの作成に失敗しました: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, db.DriverName(), driver)
	if err != nil {
		return 0, fmt.Errorf("マイグレーション %q の読み込みに失敗しました: %w", migrationsPath, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("マイグレーションの適用に失敗しました: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("スキーマバージョンの取得に失敗しました: %w", err)
	case dirty:
		return version, fmt.Errorf("スキーマバージョン %d が dirty 状態です", version)
	}
	return version, nil
}
