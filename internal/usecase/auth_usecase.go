package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/entity"
	"blog-api/internal/repo/persistent"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
)

// TokenIssuer mints bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string, roles []string) (string, time.Time, error)
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo  persistent.UserRepository
	issuer    TokenIssuer
	publisher EventPublisher
	logger    *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	issuer TokenIssuer,
	publisher EventPublisher,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:  userRepo,
		issuer:    issuer,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, newValidationError("email and password are required")
	}
	if !entity.ValidEmail(email) {
		return nil, newValidationError("could not create the user", "Email '"+email+"' is invalid.")
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, entity.ErrEmailTaken
	}
	if !errors.Is(err, entity.ErrNotFound) {
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
		Roles:        []entity.Role{entity.RoleUser},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("User registered: %s (%s)", user.ID, user.Email)
	publishAsync(uc.publisher, uc.logger, queue.RoutingUserRegistered, UserEvent{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
	})

	return uc.issue(user)
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = entity.NormalizeEmail(email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return uc.issue(user)
}

func (uc *authUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *authUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, expiresAt, err := uc.issuer.Issue(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
