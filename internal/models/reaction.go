// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Reaction kinds. A user holds at most one reaction per subject; voting the
// opposite kind replaces the existing one, voting the same kind removes it.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Subject types a reaction can attach to.
const (
	SubjectPost    = "post"
	SubjectComment = "comment"
	SubjectReply   = "reply"
)

// ValidReactionKind reports whether kind is "like" or "dislike".
func ValidReactionKind(kind string) bool {
	return kind == ReactionLike || kind == ReactionDislike
}

// Reaction records a single user's vote on a post, comment or reply.
// The combination of UserID, SubjectType and SubjectID must be unique.
type Reaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_subject" json:"user_id"`
	SubjectType string    `gorm:"not null;uniqueIndex:idx_user_subject" json:"subject_type"`
	SubjectID   uint      `gorm:"not null;uniqueIndex:idx_user_subject" json:"subject_id"`
	Kind        string    `gorm:"not null" json:"kind"`
	CreatedAt   time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// OppositeReaction returns the other reaction kind.
func OppositeReaction(kind string) string {
	if kind == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}
