package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"blog-api/internal/entity"
	"blog-api/internal/repo/persistent"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
)

type PostUseCase interface {
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	CreatePost(ctx context.Context, authorID, title, content string) (*entity.Post, error)
	UpdatePost(ctx context.Context, postID, userID, title, content string) error
	DeletePost(ctx context.Context, postID, userID string) error
}

type postUseCase struct {
	postRepo  persistent.PostRepository
	publisher EventPublisher
	logger    *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, publisher EventPublisher, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *postUseCase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	return uc.postRepo.List(ctx)
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, postID)
}

func (uc *postUseCase) CreatePost(ctx context.Context, authorID, title, content string) (*entity.Post, error) {
	title, content, err := normalizePost(title, content)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	uc.logger.Info("Post created: %s by %s", post.ID, post.AuthorID)
	publishAsync(uc.publisher, uc.logger, queue.RoutingPostCreated, PostEvent{
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		Title:    post.Title,
	})

	return post, nil
}

// UpdatePost checks existence before ownership, so unknown posts are 404 for everyone.
func (uc *postUseCase) UpdatePost(ctx context.Context, postID, userID, title, content string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}

	title, content, err = normalizePost(title, content)
	if err != nil {
		return err
	}

	post.Title = title
	post.Content = content
	if err := uc.postRepo.Update(ctx, post); err != nil {
		return err
	}

	publishAsync(uc.publisher, uc.logger, queue.RoutingPostUpdated, PostEvent{
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		Title:    post.Title,
	})
	return nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}

	if err := uc.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	uc.logger.Info("Post deleted: %s by %s", post.ID, userID)
	publishAsync(uc.publisher, uc.logger, queue.RoutingPostDeleted, PostEvent{
		PostID:   post.ID,
		AuthorID: post.AuthorID,
	})
	return nil
}

func normalizePost(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", newValidationError("title and content are required")
	}

	var details []string
	if utf8.RuneCountInString(title) > entity.MaxTitleLength {
		details = append(details, fmt.Sprintf("Title must be at most %d characters.", entity.MaxTitleLength))
	}
	if utf8.RuneCountInString(content) > entity.MaxContentLength {
		details = append(details, fmt.Sprintf("Content must be at most %d characters.", entity.MaxContentLength))
	}
	if len(details) > 0 {
		return "", "", newValidationError("post is too long", details...)
	}

	return title, content, nil
}
