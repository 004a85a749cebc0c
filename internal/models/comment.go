// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one post and owns its replies in insertion
// order. Comments have no edit or delete lifecycle of their own; they go away
// when their post does.
type Comment struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Content string  `gorm:"type:text;not null" json:"content"`
	UserID  uint    `gorm:"not null" json:"user_id"`
	PostID  uint    `gorm:"not null;index" json:"post_id"`
	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Replies []Reply `gorm:"foreignKey:CommentID" json:"replies"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int `gorm:"-" json:"dislikes_count"`
	// MyReaction is the requesting user's reaction on this comment (computed)
	MyReaction string         `gorm:"-" json:"my_reaction"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
