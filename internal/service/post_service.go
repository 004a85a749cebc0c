// Package service implements the business rules of the community discussion
// subsystem on top of the repository layer.
package service

import (
	"context"
	"strconv"
	"strings"

	"sensei/internal/feed"
	"sensei/internal/models"
	"sensei/internal/notifications"
	"sensei/internal/observability"
	"sensei/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	maxTitleLen   = 300
	maxContentLen = 10000
)

type PostService struct {
	postRepo repository.PostRepository
	notifier *notifications.Notifier
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	notifier *notifications.Notifier,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		notifier: notifier,
		isAdmin:  isAdmin,
	}
}

func validatePostContent(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 10000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "PostService", "CreatePost")
	defer span.End()

	if err := validatePostContent(in.Title, in.Content); err != nil {
		return nil, err
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreatedTotal.WithLabelValues(in.Category).Inc()
	s.notifier.Publish(ctx, notifications.Event{
		Type:    notifications.EventPostCreated,
		ActorID: in.UserID,
		PostID:  post.ID,
	})

	// Re-read so the caller gets the same aggregate a fresh GET would return.
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// ListFeed returns all posts filtered and ordered by the criteria.
func (s *PostService) ListFeed(ctx context.Context, currentUserID uint, criteria feed.Criteria) ([]models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.list")
	defer span.End()

	posts, err := s.postRepo.ListAll(ctx, currentUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	filtered := criteria != (feed.Criteria{})
	observability.FeedRequestsTotal.WithLabelValues(strconv.FormatBool(filtered)).Inc()

	result := feed.Apply(posts, criteria)
	span.AddAttributes(
		attribute.Bool("feed.filtered", filtered),
		attribute.Int("feed.result_count", len(result)),
	)
	return result, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "PostService", "UpdatePost")
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !post.IsAuthor(in.UserID) {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}
	if err := validatePostContent(in.Title, in.Content); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Edited = true
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notifications.Event{
		Type:    notifications.EventPostUpdated,
		ActorID: in.UserID,
		PostID:  post.ID,
	})

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes a post and its whole discussion tree. The author may
// always delete their own post; admins may delete anyone's.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "PostService", "DeletePost")
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}

	if !post.IsAuthor(in.UserID) {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}

	s.notifier.Publish(ctx, notifications.Event{
		Type:    notifications.EventPostDeleted,
		ActorID: in.UserID,
		PostID:  in.PostID,
	})
	return nil
}

// VerifyOwnership reports whether userID authored the post. It exists so the
// UI can decide whether to show edit controls; mutations re-check ownership
// themselves.
func (s *PostService) VerifyOwnership(ctx context.Context, postID, userID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return false, err
	}
	return post.IsAuthor(userID), nil
}
