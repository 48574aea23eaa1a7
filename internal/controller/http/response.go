package http

import (
	"errors"
	"net/http"
	"time"

	"blog-api/internal/entity"
	"blog-api/internal/usecase"
	"blog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserMe struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	ExpiresAtUtc time.Time `json:"expiresAtUtc"`
	User         UserMe    `json:"user"`
}

type PostDto struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAtUtc time.Time `json:"createdAtUtc"`
	AuthorID     string    `json:"authorId"`
	AuthorEmail  string    `json:"authorEmail"`
}

type UserDto struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	CreatedAtUtc time.Time `json:"createdAtUtc"`
	Roles        []string  `json:"roles"`
}

func toUserMe(u *entity.User) UserMe {
	return UserMe{ID: u.ID, Email: u.Email, Roles: u.RoleNames()}
}

func toPostDto(p *entity.Post) PostDto {
	return PostDto{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		CreatedAtUtc: p.CreatedAt.UTC(),
		AuthorID:     p.AuthorID,
		AuthorEmail:  p.AuthorEmail,
	}
}

func toUserDto(u *entity.User) UserDto {
	return UserDto{
		ID:           u.ID,
		Email:        u.Email,
		CreatedAtUtc: u.CreatedAt.UTC(),
		Roles:        u.RoleNames(),
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// writeError maps domain and use case errors to status codes.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: vErr.Message, Errors: vErr.Errors})
	case errors.Is(err, usecase.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, entity.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "a user with this email already exists"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	default:
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
