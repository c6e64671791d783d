package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type EventService struct {
	eventRepo event.Repository
	userRepo  user.Repository
}

func NewEventService(eventRepo event.Repository, userRepo user.Repository) *EventService {
	return &EventService{eventRepo: eventRepo, userRepo: userRepo}
}

type CreateEventInput struct {
	// CreatedBy が空なら呼び出し元が作成者になる
	CreatedBy string
	Details   event.Details
}

func (s *EventService) CreateEvent(ctx context.Context, actor *user.User, input CreateEventInput) (*event.Event, error) {
	ownerID, err := resolveSubject(actor, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if ownerID != actor.ID {
		if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
			return nil, err
		}
	}

	e := event.NewEvent(input.Details, ownerID)
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return e, nil
}

// MyEvents は userID が作成したイベントを返す。userID が空なら呼び出し元
func (s *EventService) MyEvents(ctx context.Context, actor *user.User, userID string) ([]*event.Event, error) {
	ownerID, err := resolveSubject(actor, userID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListByOwner(ctx, ownerID)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	return s.eventRepo.List(ctx)
}

type UpdateEventInput struct {
	ID string
	// UserID が空なら呼び出し元を作成者として照合する
	UserID  string
	Details event.Details
}

// GetOwnedEvent は userID が作成したイベントを返す。userID が空なら呼び出し元
// 存在しない場合と作成者が異なる場合は区別せず ErrEventNotFound を返す
func (s *EventService) GetOwnedEvent(ctx context.Context, actor *user.User, id, userID string) (*event.Event, error) {
	ownerID, err := resolveSubject(actor, userID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetByIDAndOwner(ctx, id, ownerID)
}

// UpdateEvent は作成者が一致するイベントを上書きする
func (s *EventService) UpdateEvent(ctx context.Context, actor *user.User, input UpdateEventInput) (*event.Event, error) {
	e, err := s.GetOwnedEvent(ctx, actor, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	e.Overwrite(input.Details)
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
