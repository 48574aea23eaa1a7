package http

import (
	"net/http"

	"blog-api/internal/usecase"
	"blog-api/pkg/logger"
	"blog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts godoc
// @Summary      List posts
// @Description  All posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PostDto
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dtos := make([]PostDto, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toPostDto(p))
	}
	c.JSON(http.StatusOK, dtos)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  PostDto
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toPostDto(post))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  The caller becomes the author
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post"
// @Success      201  {object}  PostDto
// @Header       201  {string}  Location  "URL of the new post"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), middleware.UserID(c), req.Title, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dto := toPostDto(post)
	if dto.AuthorEmail == "" {
		dto.AuthorEmail = middleware.UserEmail(c)
	}

	c.Header("Location", "/api/posts/"+post.ID)
	c.JSON(http.StatusCreated, dto)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Only the author may update
// @Tags         posts
// @Accept       json
// @Security     BearerAuth
// @Param        id      path  string             true  "Post ID"
// @Param        request body  UpdatePostRequest  true  "Post"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	err := h.postUseCase.UpdatePost(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Title, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the author may delete
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
