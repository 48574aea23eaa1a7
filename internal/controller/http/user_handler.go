package http

import (
	"net/http"

	"blog-api/internal/usecase"
	"blog-api/pkg/logger"
	"blog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	NewPassword *string `json:"newPassword"`
}

// ListUsers godoc
// @Summary      List users
// @Description  All users, newest first. ADMIN only.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserDto
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUseCase.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dtos := make([]UserDto, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDto(u))
	}
	c.JSON(http.StatusOK, dtos)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Role is USER or ADMIN, empty means USER. ADMIN only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateUserRequest true "User"
// @Success      200  {object}  UserDto
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.userUseCase.CreateUser(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserDto(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Changes email and role, and resets the password when newPassword is set. ADMIN only.
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id      path  string             true  "User ID"
// @Param        request body  UpdateUserRequest  true  "User"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	err := h.userUseCase.UpdateUser(c.Request.Context(), c.Param("id"), req.Email, req.Role, req.NewPassword)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Also deletes the user's posts. Admins cannot delete themselves. ADMIN only.
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUseCase.DeleteUser(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
