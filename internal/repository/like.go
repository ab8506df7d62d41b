package repository

import (
	"context"

	"postboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, postID uint, userID string) error
	Delete(ctx context.Context, postID uint, userID string) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The (post_id, user_id) unique index rejects duplicates,
// including concurrent ones, and the post foreign key rejects unknown posts.
func (r *likeRepository) Create(ctx context.Context, postID uint, userID string) error {
	like := models.Like{PostID: postID, UserID: userID}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&like).Error
	return translate("create_like", err,
		models.NewNotFoundError("Post", postID),
		models.NewConflictError("Post already liked", nil),
	)
}

// Delete removes the like if present. A missing like is not an error.
func (r *likeRepository) Delete(ctx context.Context, postID uint, userID string) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
	return translate("delete_like", err, nil, nil)
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, translate("count_likes", err, nil, nil)
	}
	return count, nil
}
