// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Reply is the leaf of the discussion tree: it belongs to exactly one comment
// and is only ever mutated by reaction toggles.
type Reply struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	CommentID uint   `gorm:"not null;index" json:"comment_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int `gorm:"-" json:"dislikes_count"`
	// MyReaction is the requesting user's reaction on this reply (computed)
	MyReaction string         `gorm:"-" json:"my_reaction"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
