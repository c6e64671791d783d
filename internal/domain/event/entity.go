package event

import (
	"strings"
	"time"
)

// TimeLayout はイベント日時の入出力フォーマット（YYYY-MM-DD HH:MM:SS）
const TimeLayout = "2006-01-02 15:04:05"

// Event はイベントエンティティを表す
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     *time.Time
	Capacity    *int
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Details はイベントの更新可能なフィールド
type Details struct {
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     *time.Time
	Capacity    *int
}

// NewEvent は新しいイベントを作成する
func NewEvent(d Details, createdBy string) *Event {
	now := time.Now()
	e := &Event{
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.apply(d)
	return e
}

// Overwrite は更新可能なフィールドをすべて置き換える
func (e *Event) Overwrite(d Details) {
	e.apply(d)
	e.UpdatedAt = time.Now()
}

func (e *Event) apply(d Details) {
	e.Title = strings.TrimSpace(d.Title)
	e.Description = d.Description
	e.Location = strings.TrimSpace(d.Location)
	e.StartTime = d.StartTime
	e.EndTime = d.EndTime
	e.Capacity = d.Capacity
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.Title == "" {
		return ErrTitleRequired
	}
	if e.Location == "" {
		return ErrLocationRequired
	}
	if e.StartTime.IsZero() {
		return ErrStartTimeRequired
	}
	// 終了時刻は開始時刻と同じでもよい
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return ErrInvalidEventTime
	}
	if e.Capacity != nil && *e.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if e.CreatedBy == "" {
		return ErrCreatorRequired
	}
	return nil
}

// IsOwnedBy は指定ユーザーが作成者かを返す
func (e *Event) IsOwnedBy(userID string) bool {
	return e.CreatedBy == userID
}

// CanAccommodate は予約済み座席数に追加で requested 席を確保できるかを返す
// 定員未設定のイベントは常に true
func (e *Event) CanAccommodate(booked, requested int) bool {
	if e.Capacity == nil {
		return true
	}
	return booked+requested <= *e.Capacity
}
