package service

import (
	"context"

	"sensei/internal/cache"
	"sensei/internal/models"
	"sensei/internal/notifications"
	"sensei/internal/observability"
	"sensei/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	replyRepo    repository.ReplyRepository
	notifier     *notifications.Notifier
}

type ToggleReactionInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	ReplyID   uint
	Kind      string
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
	notifier *notifications.Notifier,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		replyRepo:    replyRepo,
		notifier:     notifier,
	}
}

// TogglePostReaction toggles the user's reaction on a post and returns the
// refreshed post aggregate.
func (s *ReactionService) TogglePostReaction(ctx context.Context, in ToggleReactionInput) (*models.Post, error) {
	if !models.ValidReactionKind(in.Kind) {
		return nil, models.NewValidationError("Reaction must be 'like' or 'dislike'")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	return s.finishToggle(ctx, in, models.SubjectPost, in.PostID)
}

// ToggleCommentReaction toggles the user's reaction on a comment. The comment
// must belong to the post named in the request path.
func (s *ReactionService) ToggleCommentReaction(ctx context.Context, in ToggleReactionInput) (*models.Post, error) {
	if !models.ValidReactionKind(in.Kind) {
		return nil, models.NewValidationError("Reaction must be 'like' or 'dislike'")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	return s.finishToggle(ctx, in, models.SubjectComment, in.CommentID)
}

// ToggleReplyReaction toggles the user's reaction on a reply. The reply must
// belong to the comment, and the comment to the post, named in the path.
func (s *ReactionService) ToggleReplyReaction(ctx context.Context, in ToggleReactionInput) (*models.Post, error) {
	if !models.ValidReactionKind(in.Kind) {
		return nil, models.NewValidationError("Reaction must be 'like' or 'dislike'")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, err
	}
	if reply.CommentID != in.CommentID {
		return nil, models.NewNotFoundError("Reply", in.ReplyID)
	}

	return s.finishToggle(ctx, in, models.SubjectReply, in.ReplyID)
}

func (s *ReactionService) finishToggle(ctx context.Context, in ToggleReactionInput, subjectType string, subjectID uint) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "ReactionService", "Toggle")
	defer span.End()

	outcome, err := s.toggle(ctx, in.UserID, subjectType, subjectID, in.Kind)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}
	observability.AddTraceAttributesToContext(ctx,
		attribute.String("reaction.subject", subjectType),
		attribute.String("reaction.outcome", outcome),
	)

	cache.InvalidatePost(ctx, in.PostID)
	observability.ReactionsToggledTotal.WithLabelValues(subjectType, outcome).Inc()
	s.notifier.Publish(ctx, notifications.Event{
		Type:      notifications.EventReactionToggled,
		ActorID:   in.UserID,
		PostID:    in.PostID,
		SubjectID: subjectID,
		Detail:    subjectType + ":" + outcome,
	})

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// toggle applies the reaction state machine: voting the same kind again
// removes the vote, voting the opposite kind flips it, and a first vote
// inserts it. A user therefore holds at most one reaction per subject.
func (s *ReactionService) toggle(ctx context.Context, userID uint, subjectType string, subjectID uint, kind string) (string, error) {
	existing, err := s.reactionRepo.Find(ctx, userID, subjectType, subjectID)
	if err != nil {
		return "", err
	}

	switch {
	case existing == nil:
		err = s.reactionRepo.Create(ctx, &models.Reaction{
			UserID:      userID,
			SubjectType: subjectType,
			SubjectID:   subjectID,
			Kind:        kind,
		})
		return observability.ReactionOutcomeAdded, err
	case existing.Kind == kind:
		return observability.ReactionOutcomeRemoved, s.reactionRepo.Delete(ctx, existing.ID)
	default:
		existing.Kind = kind
		return observability.ReactionOutcomeFlipped, s.reactionRepo.Save(ctx, existing)
	}
}
