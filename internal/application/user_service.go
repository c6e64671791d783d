package application

import (
	"context"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

type UserService struct {
	userRepo user.Repository
	roleRepo user.RoleRepository
}

func NewUserService(userRepo user.Repository, roleRepo user.RoleRepository) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUserRole はユーザーのロールを roles テーブルの ID で差し替える
// ロールの存在確認はユーザーの存在確認より先に行う
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, roleID int) (*user.User, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.ChangeRole(role.Name); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
