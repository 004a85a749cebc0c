package service

import (
	"context"
	"testing"

	"sensei/internal/models"
	"sensei/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func adminNever(_ context.Context, _ uint) (bool, error)  { return false, nil }
func adminAlways(_ context.Context, _ uint) (bool, error) { return true, nil }

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint, uint) (*models.Post, error)
	listAllFn func(context.Context, uint) ([]models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) ListAll(ctx context.Context, currentUserID uint) ([]models.Post, error) {
	return s.listAllFn(ctx, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		listAllFn: func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 1}, nil
		},
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn  func(context.Context, *models.Reply) error
	getByIDFn func(context.Context, uint) (*models.Reply, error)
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn: func(_ context.Context, r *models.Reply) error {
			r.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Reply, error) {
			return &models.Reply{ID: id, CommentID: 1, UserID: 1}, nil
		},
	}
}

// fakeReactionRepo keeps reactions in memory so toggle sequences can be
// exercised without a database.
type fakeReactionRepo struct {
	nextID    uint
	reactions map[uint]*models.Reaction
}

var _ repository.ReactionRepository = (*fakeReactionRepo)(nil)

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{nextID: 1, reactions: map[uint]*models.Reaction{}}
}

func (f *fakeReactionRepo) Find(_ context.Context, userID uint, subjectType string, subjectID uint) (*models.Reaction, error) {
	for _, r := range f.reactions {
		if r.UserID == userID && r.SubjectType == subjectType && r.SubjectID == subjectID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReactionRepo) Create(_ context.Context, reaction *models.Reaction) error {
	reaction.ID = f.nextID
	f.nextID++
	copied := *reaction
	f.reactions[reaction.ID] = &copied
	return nil
}

func (f *fakeReactionRepo) Save(_ context.Context, reaction *models.Reaction) error {
	copied := *reaction
	f.reactions[reaction.ID] = &copied
	return nil
}

func (f *fakeReactionRepo) Delete(_ context.Context, id uint) error {
	delete(f.reactions, id)
	return nil
}

func (f *fakeReactionRepo) CountsBySubject(_ context.Context, subjectType string, subjectIDs []uint) (map[uint]repository.ReactionCounts, error) {
	counts := map[uint]repository.ReactionCounts{}
	for _, r := range f.reactions {
		if r.SubjectType != subjectType {
			continue
		}
		for _, id := range subjectIDs {
			if r.SubjectID != id {
				continue
			}
			c := counts[id]
			if r.Kind == models.ReactionLike {
				c.Likes++
			} else {
				c.Dislikes++
			}
			counts[id] = c
		}
	}
	return counts, nil
}

func (f *fakeReactionRepo) KindsForUser(_ context.Context, userID uint, subjectType string, subjectIDs []uint) (map[uint]string, error) {
	kinds := map[uint]string{}
	for _, r := range f.reactions {
		if r.UserID != userID || r.SubjectType != subjectType {
			continue
		}
		for _, id := range subjectIDs {
			if r.SubjectID == id {
				kinds[id] = r.Kind
			}
		}
	}
	return kinds, nil
}

func (f *fakeReactionRepo) kindFor(userID uint, subjectType string, subjectID uint) string {
	for _, r := range f.reactions {
		if r.UserID == userID && r.SubjectType == subjectType && r.SubjectID == subjectID {
			return r.Kind
		}
	}
	return ""
}
