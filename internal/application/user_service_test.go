package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

func TestUserService_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewUserService(userRepo, new(MockRoleRepository))
	ctx := context.Background()

	users := []*user.User{{ID: "u1", Role: user.RoleAdmin}, {ID: "u2", Role: user.RoleAttendee}}
	userRepo.On("List", ctx).Return(users, nil)

	result, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("ロールを差し替える", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		roleRepo := new(MockRoleRepository)
		service := NewUserService(userRepo, roleRepo)

		target := &user.User{ID: "user-1", Role: user.RoleAttendee}
		roleRepo.On("GetByID", ctx, 2).Return(&user.RoleDefinition{ID: 2, Name: user.RoleEventCreator}, nil)
		userRepo.On("GetByID", ctx, "user-1").Return(target, nil)
		userRepo.On("UpdateRole", ctx, target).Return(nil)

		u, err := service.UpdateUserRole(ctx, "user-1", 2)
		require.NoError(t, err)
		assert.Equal(t, user.RoleEventCreator, u.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("存在しないロールはユーザーを読まずに失敗する", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		roleRepo := new(MockRoleRepository)
		service := NewUserService(userRepo, roleRepo)

		roleRepo.On("GetByID", ctx, 99).Return(nil, user.ErrRoleNotFound)

		_, err := service.UpdateUserRole(ctx, "user-1", 99)
		assert.ErrorIs(t, err, user.ErrRoleNotFound)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("存在しないユーザーは ErrUserNotFound", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		roleRepo := new(MockRoleRepository)
		service := NewUserService(userRepo, roleRepo)

		roleRepo.On("GetByID", ctx, 1).Return(&user.RoleDefinition{ID: 1, Name: user.RoleAdmin}, nil)
		userRepo.On("GetByID", ctx, "missing").Return(nil, user.ErrUserNotFound)

		_, err := service.UpdateUserRole(ctx, "missing", 1)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
	})
}
