package usecase

import (
	"context"

	"blog-api/internal/entity"
	"blog-api/internal/repo/persistent"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
)

type UserUseCase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	CreateUser(ctx context.Context, email, password, role string) (*entity.User, error)
	UpdateUser(ctx context.Context, id, email, role string, newPassword *string) error
	DeleteUser(ctx context.Context, actorID, id string) error
}

type userUseCase struct {
	userRepo  persistent.UserRepository
	publisher EventPublisher
	logger    *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, publisher EventPublisher, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *userUseCase) CreateUser(ctx context.Context, email, password, role string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	parsedRole, err := entity.ParseRole(role)
	if err != nil {
		return nil, newValidationError("invalid role, use USER or ADMIN")
	}
	if !entity.ValidEmail(email) {
		return nil, newValidationError("could not create the user", "Email '"+email+"' is invalid.")
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Roles:        []entity.Role{parsedRole},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("User created by admin: %s (%s, %s)", user.ID, user.Email, parsedRole)
	publishAsync(uc.publisher, uc.logger, queue.RoutingUserCreated, UserEvent{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
	})

	return user, nil
}

// UpdateUser changes email, swaps the primary role and optionally resets the password.
// All input is validated before anything is written.
func (uc *userUseCase) UpdateUser(ctx context.Context, id, email, role string, newPassword *string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	parsedRole, err := entity.ParseRole(role)
	if err != nil {
		return newValidationError("invalid role, use USER or ADMIN")
	}
	email = entity.NormalizeEmail(email)
	if !entity.ValidEmail(email) {
		return newValidationError("could not update the user", "Email '"+email+"' is invalid.")
	}

	if newPassword != nil && *newPassword != "" {
		if err := checkPasswordPolicy(*newPassword); err != nil {
			return err
		}
		hash, err := hashPassword(*newPassword)
		if err != nil {
			uc.logger.Error("Failed to hash password: %v", err)
			return err
		}
		user.PasswordHash = hash
	}

	user.Email = email
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if current := user.PrimaryRole(); current != parsedRole {
		if current != "" {
			if err := uc.userRepo.RemoveRole(ctx, user.ID, current); err != nil {
				return err
			}
		}
		if err := uc.userRepo.AddRole(ctx, user.ID, parsedRole); err != nil {
			return err
		}
		uc.logger.Info("User %s role changed from %q to %s", user.ID, current, parsedRole)
	}

	return nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("User deleted: %s by %s", id, actorID)
	publishAsync(uc.publisher, uc.logger, queue.RoutingUserDeleted, UserEvent{UserID: id})
	return nil
}
