package models

import "time"

// Like marks that a user liked a post.
// The combination of PostID and UserID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID    string    `gorm:"size:255;not null;uniqueIndex:idx_likes_post_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
