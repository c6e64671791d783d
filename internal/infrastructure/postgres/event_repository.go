package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/transaction"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

const eventColumns = `id, title, description, location, start_time, end_time, capacity, created_by, created_at, updated_at`

// eventRow はDBの行を表す構造体
type eventRow struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Location    string     `db:"location"`
	StartTime   time.Time  `db:"start_time"`
	EndTime     *time.Time `db:"end_time"`
	Capacity    *int       `db:"capacity"`
	CreatedBy   string     `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// toEntity はeventRowをEventエンティティに変換する
func (r *eventRow) toEntity() *event.Event {
	var desc string
	if r.Description != nil {
		desc = *r.Description
	}
	return &event.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: desc,
		Location:    r.Location,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Capacity:    r.Capacity,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create は新しいイベントを作成する
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (title, description, location, start_time, end_time, capacity, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		e.Title, nullableString(e.Description), e.Location, e.StartTime, e.EndTime, e.Capacity,
		e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok || isInvalidID(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, eventLookupError(err)
	}
	return row.toEntity(), nil
}

// GetByIDForUpdate はトランザクション内で行ロックを取得してイベントを取得する
func (r *EventRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*event.Event, error) {
	sqlxTx, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	var row eventRow
	if err := sqlxTx.GetContext(ctx, &row, query, id); err != nil {
		return nil, eventLookupError(err)
	}
	return row.toEntity(), nil
}

// GetByIDAndOwner は作成者が一致する場合のみイベントを取得する
func (r *EventRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND created_by = $2`

	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id, ownerID); err != nil {
		return nil, eventLookupError(err)
	}
	return row.toEntity(), nil
}

// List は全イベントを取得する
func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at, id`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}
	return toEvents(rows), nil
}

// ListByOwner は作成者のイベント一覧を取得する
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE created_by = $1 ORDER BY created_at, id`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		if isInvalidID(err) {
			return []*event.Event{}, nil
		}
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}
	return toEvents(rows), nil
}

// Update は作成者が一致するイベントを上書き更新する
func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, location = $3, start_time = $4, end_time = $5,
		    capacity = $6, updated_at = $7
		WHERE id = $8 AND created_by = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		e.Title, nullableString(e.Description), e.Location, e.StartTime, e.EndTime,
		e.Capacity, e.UpdatedAt, e.ID, e.CreatedBy,
	)
	if err != nil {
		if isInvalidID(err) {
			return event.ErrEventNotFound
		}
		return fmt.Errorf("イベント更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Delete はイベントを削除する（予約はカスケード削除される）
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isInvalidID(err) {
			return event.ErrEventNotFound
		}
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

func eventLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return event.ErrEventNotFound
	}
	return fmt.Errorf("イベント取得に失敗しました: %w", err)
}

func toEvents(rows []eventRow) []*event.Event {
	events := make([]*event.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toEntity()
	}
	return events
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
