package persistent

import (
	"context"
	"fmt"

	"blog-api/internal/entity"
	"blog-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	EnsureRole(ctx context.Context, role entity.Role) error
	AddRole(ctx context.Context, userID string, role entity.Role) error
	RemoveRole(ctx context.Context, userID string, role entity.Role) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and links every role in user.Roles in one transaction.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(userModel).Error; err != nil {
			return err
		}
		for _, role := range user.Roles {
			if err := linkRole(tx, userModel.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).Preload("Roles").Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

// Update writes email and password hash.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if !validID(user.ID) {
		return entity.ErrNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entity.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes the user's posts, role links and the user itself.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&model.PostModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRoleModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete role links: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&model.UserModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}

func (r *userRepository) EnsureRole(ctx context.Context, role entity.Role) error {
	_, err := ensureRole(r.db.WithContext(ctx), role)
	return err
}

func (r *userRepository) AddRole(ctx context.Context, userID string, role entity.Role) error {
	if !validID(userID) {
		return entity.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkRole(tx, userID, role)
	})
}

func (r *userRepository) RemoveRole(ctx context.Context, userID string, role entity.Role) error {
	if !validID(userID) {
		return entity.ErrNotFound
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id IN (?)", userID,
			r.db.Model(&model.RoleModel{}).Select("id").Where("name = ?", string(role))).
		Delete(&model.UserRoleModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove role %s: %w", role, err)
	}
	return nil
}

func ensureRole(tx *gorm.DB, role entity.Role) (*model.RoleModel, error) {
	roleModel := model.RoleModel{}
	if err := tx.Where("name = ?", string(role)).Attrs(model.RoleModel{Name: string(role)}).FirstOrCreate(&roleModel).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure role %s: %w", role, err)
	}
	return &roleModel, nil
}

func linkRole(tx *gorm.DB, userID string, role entity.Role) error {
	roleModel, err := ensureRole(tx, role)
	if err != nil {
		return err
	}
	link := model.UserRoleModel{UserID: userID, RoleID: roleModel.ID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return fmt.Errorf("failed to assign role %s: %w", role, err)
	}
	return nil
}
