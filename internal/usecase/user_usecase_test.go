package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blog-api/internal/entity"
	"blog-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to USER", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())

		repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "b@x.com" && len(u.Roles) == 1 && u.Roles[0] == entity.RoleUser
		})).Return(nil)

		user, err := uc.CreateUser(ctx, " B@x.com", "secret1", "")

		require.NoError(t, err)
		assert.Equal(t, "generated-id", user.ID)
	})

	t.Run("normalizes role", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())

		repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Roles[0] == entity.RoleAdmin
		})).Return(nil)

		_, err := uc.CreateUser(ctx, "b@x.com", "secret1", " admin ")
		require.NoError(t, err)
	})

	t.Run("invalid role", func(t *testing.T) {
		uc := NewUserUseCase(new(MockUserRepository), nil, logger.NewNop())

		_, err := uc.CreateUser(ctx, "b@x.com", "secret1", "root")

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("password too long", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())

		_, err := uc.CreateUser(ctx, "b@x.com", strings.Repeat("p", MaxPasswordBytes+1), "USER")

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"Passwords must be at most 72 bytes."}, vErr.Errors)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())

		repo.On("Create", ctx, mock.Anything).Return(entity.ErrEmailTaken)

		_, err := uc.CreateUser(ctx, "b@x.com", "secret1", "USER")
		assert.ErrorIs(t, err, entity.ErrEmailTaken)
	})
}

func TestUpdateUser_SwapsPrimaryRole(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()

	existing := &entity.User{ID: "u1", Email: "a@x.com", PasswordHash: "old", Roles: []entity.Role{entity.RoleUser}}
	repo.On("GetByID", ctx, "u1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@x.com" && u.PasswordHash == "old"
	})).Return(nil)
	repo.On("RemoveRole", ctx, "u1", entity.RoleUser).Return(nil)
	repo.On("AddRole", ctx, "u1", entity.RoleAdmin).Return(nil)

	err := uc.UpdateUser(ctx, "u1", "New@x.com", "ADMIN", nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateUser_SameRoleAndNewPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()
	newPassword := "another1"

	repo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Email: "a@x.com", PasswordHash: "old", Roles: []entity.Role{entity.RoleUser}}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return checkPassword(u.PasswordHash, newPassword)
	})).Return(nil)

	err := uc.UpdateUser(ctx, "u1", "a@x.com", "user", &newPassword)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "RemoveRole", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AddRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_Failures(t *testing.T) {
	ctx := context.Background()
	short := "abc"

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())
		repo.On("GetByID", ctx, "missing").Return(nil, entity.ErrNotFound)

		assert.ErrorIs(t, uc.UpdateUser(ctx, "missing", "a@x.com", "USER", nil), entity.ErrNotFound)
	})

	t.Run("weak password writes nothing", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())
		repo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Roles: []entity.Role{entity.RoleUser}}, nil)

		err := uc.UpdateUser(ctx, "u1", "a@x.com", "USER", &short)

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("new password too long writes nothing", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())
		repo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Roles: []entity.Role{entity.RoleUser}}, nil)
		long := strings.Repeat("p", 100)

		err := uc.UpdateUser(ctx, "u1", "a@x.com", "USER", &long)

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())
		repo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Roles: []entity.Role{entity.RoleUser}}, nil)
		repo.On("Update", ctx, mock.Anything).Return(entity.ErrEmailTaken)

		assert.ErrorIs(t, uc.UpdateUser(ctx, "u1", "b@x.com", "USER", nil), entity.ErrEmailTaken)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())

		assert.ErrorIs(t, uc.DeleteUser(ctx, "admin", "admin"), ErrSelfDelete)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := NewUserUseCase(repo, nil, logger.NewNop())
		repo.On("Delete", ctx, "u1").Return(nil)

		assert.NoError(t, uc.DeleteUser(ctx, "admin", "u1"))
		repo.AssertExpectations(t)
	})
}
