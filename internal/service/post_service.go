// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"postboard/internal/events"
	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const publishTimeout = 2 * time.Second

type PostService struct {
	postRepo  repository.PostRepository
	publisher events.Publisher
}

type CreatePostInput struct {
	Content  string
	ImageURL string
	UserID   string
}

func NewPostService(postRepo repository.PostRepository, publisher events.Publisher) *PostService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PostService{
		postRepo:  postRepo,
		publisher: publisher,
	}
}

// ListPosts returns all posts newest first. viewerID only affects isLiked.
func (s *PostService) ListPosts(ctx context.Context, viewerID string) ([]models.PostSummary, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.ListPosts")
	defer span.End()

	posts, err := s.postRepo.List(ctx, strings.TrimSpace(viewerID))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.PostSummary{}
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.CreatePost")
	defer span.End()

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{
		Content:  content,
		ImageURL: optional(in.ImageURL),
		UserID:   optional(in.UserID),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	userID := ""
	if post.UserID != nil {
		userID = *post.UserID
	}
	publish(ctx, s.publisher, events.New(events.TypePostCreated, post.ID, userID))
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	ctx, span := observability.StartSpan(ctx, "PostService.DeletePost", attribute.Int64("post.id", int64(id)))
	defer span.End()

	if id == 0 {
		return models.NewValidationError("Invalid ID")
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.publisher, events.New(events.TypePostDeleted, id, ""))
	return nil
}

// optional maps blank strings to NULL.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// publish delivers an event after the store change has committed. Failures are logged
// and counted but never reach the caller.
func publish(ctx context.Context, p events.Publisher, event events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.Publish(ctx, event); err != nil {
		middleware.EventPublishFailures.WithLabelValues(event.Type).Inc()
		middleware.Logger.WarnContext(ctx, "Failed to publish event",
			slog.String("type", event.Type),
			slog.Uint64("post_id", uint64(event.PostID)),
			slog.String("error", err.Error()),
		)
	}
}
