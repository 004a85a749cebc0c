package repository

import (
	"testing"

	"sensei/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_FindAbsentReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	got, err := repo.Find(testCtx, 1, models.SubjectPost, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReactionRepository_CreateFindDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)
	user := createTestUser(t, db, "voter")

	reaction := &models.Reaction{
		UserID:      user.ID,
		SubjectType: models.SubjectPost,
		SubjectID:   7,
		Kind:        models.ReactionLike,
	}
	require.NoError(t, repo.Create(testCtx, reaction))

	got, err := repo.Find(testCtx, user.ID, models.SubjectPost, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ReactionLike, got.Kind)

	got.Kind = models.ReactionDislike
	require.NoError(t, repo.Save(testCtx, got))

	got, err = repo.Find(testCtx, user.ID, models.SubjectPost, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ReactionDislike, got.Kind)

	require.NoError(t, repo.Delete(testCtx, got.ID))
	got, err = repo.Find(testCtx, user.ID, models.SubjectPost, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReactionRepository_UniquePerUserAndSubject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)
	user := createTestUser(t, db, "voter")

	first := &models.Reaction{
		UserID: user.ID, SubjectType: models.SubjectComment, SubjectID: 3, Kind: models.ReactionLike,
	}
	require.NoError(t, repo.Create(testCtx, first))

	dup := &models.Reaction{
		UserID: user.ID, SubjectType: models.SubjectComment, SubjectID: 3, Kind: models.ReactionDislike,
	}
	assert.Error(t, repo.Create(testCtx, dup))

	// same subject id under a different subject type is a distinct row
	other := &models.Reaction{
		UserID: user.ID, SubjectType: models.SubjectReply, SubjectID: 3, Kind: models.ReactionDislike,
	}
	assert.NoError(t, repo.Create(testCtx, other))
}

func TestReactionRepository_CountsBySubject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")
	c := createTestUser(t, db, "c")

	addReaction(t, db, a.ID, models.SubjectPost, 1, models.ReactionLike)
	addReaction(t, db, b.ID, models.SubjectPost, 1, models.ReactionLike)
	addReaction(t, db, c.ID, models.SubjectPost, 1, models.ReactionDislike)
	addReaction(t, db, a.ID, models.SubjectPost, 2, models.ReactionDislike)
	// different subject type must not bleed in
	addReaction(t, db, a.ID, models.SubjectComment, 1, models.ReactionLike)

	counts, err := repo.CountsBySubject(testCtx, models.SubjectPost, []uint{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, ReactionCounts{Likes: 2, Dislikes: 1}, counts[1])
	assert.Equal(t, ReactionCounts{Likes: 0, Dislikes: 1}, counts[2])
	_, ok := counts[3]
	assert.False(t, ok, "subject with no reactions stays absent")
}

func TestReactionRepository_CountsBySubject_EmptyIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	counts, err := repo.CountsBySubject(testCtx, models.SubjectPost, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestReactionRepository_KindsForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")

	addReaction(t, db, a.ID, models.SubjectPost, 1, models.ReactionLike)
	addReaction(t, db, a.ID, models.SubjectPost, 2, models.ReactionDislike)
	addReaction(t, db, b.ID, models.SubjectPost, 3, models.ReactionLike)

	kinds, err := repo.KindsForUser(testCtx, a.ID, models.SubjectPost, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, kinds[1])
	assert.Equal(t, models.ReactionDislike, kinds[2])
	_, ok := kinds[3]
	assert.False(t, ok)

	// anonymous viewer gets an empty map
	kinds, err = repo.KindsForUser(testCtx, 0, models.SubjectPost, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Empty(t, kinds)
}
