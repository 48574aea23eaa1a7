package persistent

import (
	"blog-api/internal/entity"
	"blog-api/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	roles := make([]entity.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, entity.Role(r.Name))
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		Roles:        roles,
	}
}

// ToUserModel maps the scalar columns only; role links are managed separately.
func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:           e.ID,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
		AuthorID:    m.AuthorID,
		AuthorEmail: m.Author.Email,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		AuthorID:  e.AuthorID,
	}
}
