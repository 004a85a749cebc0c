// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Category tags a post can carry. The set is fixed; anything else is rejected
// at creation time.
const (
	CategoryQuestion     = "Question"
	CategoryDiscussion   = "Discussion"
	CategoryProject      = "Project"
	CategoryAnnouncement = "Announcement"
	CategoryOther        = "Other"
)

// Categories is the allowed set of post category tags.
var Categories = map[string]struct{}{
	CategoryQuestion:     {},
	CategoryDiscussion:   {},
	CategoryProject:      {},
	CategoryAnnouncement: {},
	CategoryOther:        {},
}

// ValidCategory reports whether tag is one of the fixed category tags.
func ValidCategory(tag string) bool {
	_, ok := Categories[tag]
	return ok
}

// Post is the root aggregate of a community discussion: it carries a category
// tag and owns its comments in insertion order. The author is immutable after
// creation; only the author (or an admin, for deletion) may modify it.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"not null;index" json:"category"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// Edited is set once the author edits title or content.
	Edited   bool      `gorm:"not null;default:false" json:"edited"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int `gorm:"-" json:"dislikes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"-" json:"comments_count"`
	// MyReaction is the requesting user's reaction on this post: "", "like" or "dislike" (computed)
	MyReaction string         `gorm:"-" json:"my_reaction"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAuthor reports whether userID is the post's author. This is the ownership
// guard used both for the advisory ownership endpoint and, again, inside every
// mutating service call.
func (p *Post) IsAuthor(userID uint) bool {
	return p.UserID == userID
}
