package service

import (
	"context"
	"strings"

	"sensei/internal/cache"
	"sensei/internal/models"
	"sensei/internal/notifications"
	"sensei/internal/observability"
	"sensei/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	postRepo    repository.PostRepository
	notifier    *notifications.Notifier
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type AddReplyInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
	postRepo repository.PostRepository,
	notifier *notifications.Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 10000 characters)")
	}
	return nil
}

// AddComment attaches a comment to a post and returns the refreshed post
// aggregate so the caller immediately sees the new comment in place.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "CommentService", "AddComment")
	defer span.End()

	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	// Confirms the post exists before writing.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreatedTotal.WithLabelValues("comment").Inc()
	s.notifier.Publish(ctx, notifications.Event{
		Type:      notifications.EventCommentCreated,
		ActorID:   in.UserID,
		PostID:    in.PostID,
		SubjectID: comment.ID,
	})

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// AddReply attaches a reply to a comment. The comment must belong to the post
// named in the request path, otherwise the reply is rejected as not found.
func (s *CommentService) AddReply(ctx context.Context, in AddReplyInput) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "CommentService", "AddReply")
	defer span.End()

	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	reply := &models.Reply{
		Content:   in.Content,
		UserID:    in.UserID,
		CommentID: in.CommentID,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, in.PostID)

	observability.CommentsCreatedTotal.WithLabelValues("reply").Inc()
	s.notifier.Publish(ctx, notifications.Event{
		Type:      notifications.EventReplyCreated,
		ActorID:   in.UserID,
		PostID:    in.PostID,
		SubjectID: reply.ID,
	})

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}
