package repository

import (
	"context"

	"postboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, viewerID string) ([]models.PostSummary, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Purge(ctx context.Context) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// List returns every post newest first with like counts. isLiked is only computed
// for a non-empty viewerID; otherwise the query never touches the viewer's likes.
func (r *postRepository) List(ctx context.Context, viewerID string) ([]models.PostSummary, error) {
	posts := make([]models.PostSummary, 0)
	err := r.applyLikeDetails(r.db.WithContext(ctx).Table("posts"), viewerID).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate("list_posts", err, nil, nil)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	return translate("create_post", err, nil, nil)
}

// Delete removes the post and its likes in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete_post", err, models.NewNotFoundError("Post", id), nil)
}

// Purge deletes all likes and posts and returns the number of posts removed.
func (r *postRepository) Purge(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("1 = 1").Delete(&models.Post{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, translate("purge", err, nil, nil)
	}
	return removed, nil
}

func (r *postRepository) applyLikeDetails(db *gorm.DB, viewerID string) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count"

	if viewerID != "" {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as is_liked", viewerID)
	}

	return db.Select(selectQuery + ", false as is_liked")
}
