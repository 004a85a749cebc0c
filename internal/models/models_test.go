package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fiber.StatusBadRequest, StatusForError(NewValidationError("bad input")))
	assert.Equal(t, fiber.StatusNotFound, StatusForError(NewNotFoundError("Post", 42)))
	assert.Equal(t, fiber.StatusForbidden, StatusForError(NewUnauthorizedError("not yours")))
	assert.Equal(t, fiber.StatusInternalServerError, StatusForError(NewInternalError(errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusForError(errors.New("plain error")))
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestValidCategory(t *testing.T) {
	t.Parallel()

	for _, c := range []string{CategoryQuestion, CategoryDiscussion, CategoryProject, CategoryAnnouncement, CategoryOther} {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("question"), "categories are case sensitive")
	assert.False(t, ValidCategory("Rant"))
	assert.False(t, ValidCategory(""))
}

func TestValidReactionKind(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidReactionKind(ReactionLike))
	assert.True(t, ValidReactionKind(ReactionDislike))
	assert.False(t, ValidReactionKind("LIKE"))
	assert.False(t, ValidReactionKind(""))
}

func TestOppositeReaction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReactionDislike, OppositeReaction(ReactionLike))
	assert.Equal(t, ReactionLike, OppositeReaction(ReactionDislike))
}

func TestPostIsAuthor(t *testing.T) {
	t.Parallel()

	post := Post{UserID: 7}
	assert.True(t, post.IsAuthor(7))
	assert.False(t, post.IsAuthor(8))
}
