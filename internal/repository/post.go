package repository

import (
	"context"
	"errors"

	"sensei/internal/cache"
	"sensei/internal/models"
	"sensei/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListAll(ctx context.Context, currentUserID uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db        *gorm.DB
	reactions ReactionRepository
	log       *observability.RepoLogger
	trace     *observability.TraceLayer
	metrics   *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB, reactions ReactionRepository) PostRepository {
	return &postRepository{
		db:        db,
		reactions: reactions,
		log:       observability.NewRepoLogger("posts"),
		trace:     observability.GetTraceLayer(),
		metrics:   observability.NewDatabaseMetrics(db),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "posts")
	defer span.End()
	defer r.metrics.TrackQuery("insert", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"post_id": post.ID, "user_id": post.UserID})
	cache.InvalidatePostsList(ctx)
	return nil
}

// GetByID loads the full discussion tree for one post: nested comments and
// replies in insertion order, with reaction counts and the viewer's own
// reaction filled in. Anonymous reads go through the cache; authenticated
// reads bypass it because MyReaction differs per viewer.
func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "posts")
	defer span.End()

	var post models.Post

	load := func() error {
		if err := r.discussionScope(ctx).First(&post, id).Error; err != nil {
			return err
		}
		return r.enrichPost(ctx, &post, currentUserID)
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, load)
	} else {
		err = load()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// ListAll returns every post in insertion order with counts filled in, but
// without the comment tree. Feed filtering and sorting happen in memory on
// top of this result.
func (r *postRepository) ListAll(ctx context.Context, currentUserID uint) ([]models.Post, error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "ListAll", "posts")
	defer span.End()

	var posts []models.Post

	load := func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			Order("created_at ASC, id ASC").
			Find(&posts).Error; err != nil {
			return err
		}
		return r.enrichPostList(ctx, posts, currentUserID)
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostsListKey(), &posts, cache.PostsListTTL, load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Update", "posts")
	defer span.End()
	defer r.metrics.TrackQuery("update", "posts")()

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return err
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"post_id": post.ID})
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post and its entire discussion tree. Reactions and the
// comment tree are hard-deleted inside one transaction; the post itself is
// soft-deleted.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "posts")
	defer span.End()
	defer r.metrics.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		var replyIDs []uint
		if len(commentIDs) > 0 {
			if err := tx.Model(&models.Reply{}).
				Where("comment_id IN ?", commentIDs).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
		}

		if len(replyIDs) > 0 {
			if err := tx.Where("subject_type = ? AND subject_id IN ?", models.SubjectReply, replyIDs).
				Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", replyIDs).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("subject_type = ? AND subject_id IN ?", models.SubjectComment, commentIDs).
				Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("subject_type = ? AND subject_id = ?", models.SubjectPost, id).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		return tx.Delete(&post).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return err
	}

	r.log.LogDelete(ctx, map[string]interface{}{"post_id": id})
	cache.InvalidatePost(ctx, id)
	return nil
}

// discussionScope preloads the comment tree in insertion order.
func (r *postRepository) discussionScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at ASC, replies.id ASC")
		}).
		Preload("Comments.Replies.User")
}

// enrichPost fills the computed reaction counts and the viewer's reaction for
// a post and its loaded comment tree.
func (r *postRepository) enrichPost(ctx context.Context, post *models.Post, currentUserID uint) error {
	commentIDs := make([]uint, 0, len(post.Comments))
	var replyIDs []uint
	totalReplies := 0
	for i := range post.Comments {
		commentIDs = append(commentIDs, post.Comments[i].ID)
		for j := range post.Comments[i].Replies {
			replyIDs = append(replyIDs, post.Comments[i].Replies[j].ID)
		}
		totalReplies += len(post.Comments[i].Replies)
	}
	post.CommentsCount = len(post.Comments) + totalReplies

	postCounts, err := r.reactions.CountsBySubject(ctx, models.SubjectPost, []uint{post.ID})
	if err != nil {
		return err
	}
	post.LikesCount = postCounts[post.ID].Likes
	post.DislikesCount = postCounts[post.ID].Dislikes

	commentCounts, err := r.reactions.CountsBySubject(ctx, models.SubjectComment, commentIDs)
	if err != nil {
		return err
	}
	replyCounts, err := r.reactions.CountsBySubject(ctx, models.SubjectReply, replyIDs)
	if err != nil {
		return err
	}

	postKinds, err := r.reactions.KindsForUser(ctx, currentUserID, models.SubjectPost, []uint{post.ID})
	if err != nil {
		return err
	}
	commentKinds, err := r.reactions.KindsForUser(ctx, currentUserID, models.SubjectComment, commentIDs)
	if err != nil {
		return err
	}
	replyKinds, err := r.reactions.KindsForUser(ctx, currentUserID, models.SubjectReply, replyIDs)
	if err != nil {
		return err
	}
	post.MyReaction = postKinds[post.ID]

	for i := range post.Comments {
		c := &post.Comments[i]
		c.LikesCount = commentCounts[c.ID].Likes
		c.DislikesCount = commentCounts[c.ID].Dislikes
		c.MyReaction = commentKinds[c.ID]
		for j := range c.Replies {
			rep := &c.Replies[j]
			rep.LikesCount = replyCounts[rep.ID].Likes
			rep.DislikesCount = replyCounts[rep.ID].Dislikes
			rep.MyReaction = replyKinds[rep.ID]
		}
	}
	return nil
}

// enrichPostList fills counts for a list of posts whose comment trees are not
// loaded. Comment and reply totals come from two GROUP BY queries.
func (r *postRepository) enrichPostList(ctx context.Context, posts []models.Post, currentUserID uint) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
	}

	counts, err := r.reactions.CountsBySubject(ctx, models.SubjectPost, postIDs)
	if err != nil {
		return err
	}
	kinds, err := r.reactions.KindsForUser(ctx, currentUserID, models.SubjectPost, postIDs)
	if err != nil {
		return err
	}

	commentTotals, err := r.commentTotals(ctx, postIDs)
	if err != nil {
		return err
	}

	for i := range posts {
		p := &posts[i]
		p.LikesCount = counts[p.ID].Likes
		p.DislikesCount = counts[p.ID].Dislikes
		p.MyReaction = kinds[p.ID]
		p.CommentsCount = commentTotals[p.ID]
	}
	return nil
}

// commentTotals counts comments plus replies per post.
func (r *postRepository) commentTotals(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	totals := make(map[uint]int, len(postIDs))

	var commentRows []struct {
		PostID uint
		Total  int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) as total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return nil, err
	}
	for _, row := range commentRows {
		totals[row.PostID] += row.Total
	}

	var replyRows []struct {
		PostID uint
		Total  int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Select("comments.post_id as post_id, COUNT(*) as total").
		Joins("JOIN comments ON comments.id = replies.comment_id").
		Where("comments.post_id IN ? AND comments.deleted_at IS NULL AND replies.deleted_at IS NULL", postIDs).
		Group("comments.post_id").
		Scan(&replyRows).Error; err != nil {
		return nil, err
	}
	for _, row := range replyRows {
		totals[row.PostID] += row.Total
	}

	return totals, nil
}
