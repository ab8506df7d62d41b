// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is a user-authored content record. Posts are immutable after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"type:text" json:"imageUrl"`
	UserID    *string   `gorm:"size:255;index" json:"userId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostSummary is a post together with its aggregate like state for one viewer.
// LikeCount and IsLiked are computed at query time and never persisted.
type PostSummary struct {
	Post
	LikeCount int64 `gorm:"column:like_count;->;-:migration" json:"likeCount"`
	IsLiked   bool  `gorm:"column:is_liked;->;-:migration" json:"isLiked"`
}

// LikeState is the like/unlike response shape.
type LikeState struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}
