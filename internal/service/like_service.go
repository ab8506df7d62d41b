package service

import (
	"context"
	"strings"

	"postboard/internal/events"
	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LikeService adds and removes likes. Add and remove are separate operations,
// not an atomic flip.
type LikeService struct {
	likeRepo  repository.LikeRepository
	publisher events.Publisher
}

type LikeInput struct {
	PostID uint
	UserID string
}

func NewLikeService(likeRepo repository.LikeRepository, publisher events.Publisher) *LikeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LikeService{
		likeRepo:  likeRepo,
		publisher: publisher,
	}
}

// Like records a like. Liking twice fails with a CONFLICT error.
func (s *LikeService) Like(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	ctx, span := observability.StartSpan(ctx, "LikeService.Like", attribute.Int64("post.id", int64(in.PostID)))
	defer span.End()

	state, err := s.like(ctx, in)
	record(span, "like", err)
	return state, err
}

// Unlike removes a like if one exists. Unliking a post the user never liked succeeds.
func (s *LikeService) Unlike(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	ctx, span := observability.StartSpan(ctx, "LikeService.Unlike", attribute.Int64("post.id", int64(in.PostID)))
	defer span.End()

	state, err := s.unlike(ctx, in)
	record(span, "unlike", err)
	return state, err
}

func record(span trace.Span, action string, err error) {
	result := resultLabel(err)
	middleware.LikeToggles.WithLabelValues(action, result).Inc()
	span.SetAttributes(attribute.String("like.result", result))
	if result == "error" {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (s *LikeService) like(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	userID, err := validateLikeInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.likeRepo.Create(ctx, in.PostID, userID); err != nil {
		return nil, err
	}
	count, err := s.likeRepo.CountByPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.TypePostLiked, in.PostID, userID).WithLikeCount(count))
	return &models.LikeState{LikeCount: count, IsLiked: true}, nil
}

func (s *LikeService) unlike(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	userID, err := validateLikeInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.likeRepo.Delete(ctx, in.PostID, userID); err != nil {
		return nil, err
	}
	count, err := s.likeRepo.CountByPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.TypePostUnliked, in.PostID, userID).WithLikeCount(count))
	return &models.LikeState{LikeCount: count, IsLiked: false}, nil
}

func validateLikeInput(in LikeInput) (string, error) {
	if in.PostID == 0 {
		return "", models.NewValidationError("Invalid ID")
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return "", models.NewValidationError("userId is required")
	}
	return userID, nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch models.ErrorCode(err) {
	case models.CodeValidation:
		return "invalid"
	case models.CodeConflict:
		return "conflict"
	case models.CodeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
