package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           string      `gorm:"type:uuid;primaryKey"`
	Email        string      `gorm:"type:varchar(256);uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	CreatedAt    time.Time   `gorm:"index;not null"`
	Roles        []RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type RoleModel struct {
	ID   string `gorm:"type:uuid;primaryKey"`
	Name string `gorm:"type:varchar(32);uniqueIndex;not null"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// UserRoleModel is the join row between users and roles.
type UserRoleModel struct {
	UserID string `gorm:"type:uuid;primaryKey"`
	RoleID string `gorm:"type:uuid;primaryKey"`
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}
