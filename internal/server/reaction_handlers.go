package server

import (
	"sensei/internal/models"
	"sensei/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReactionRequest represents the reaction request body
type ReactionRequest struct {
	Kind string `json:"kind"`
}

// ReactToPost toggles a like/dislike on a post
// @Summary React to a post
// @Description Toggle a reaction: adding the same kind twice removes it, the opposite kind flips it
// @Tags community
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body ReactionRequest true "Reaction kind (like or dislike)"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id}/reactions [post]
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.reactionService.TogglePostReaction(c.UserContext(), service.ToggleReactionInput{
		UserID: userID,
		PostID: postID,
		Kind:   req.Kind,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// ReactToComment toggles a like/dislike on a comment
// @Summary React to a comment
// @Tags community
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body ReactionRequest true "Reaction kind (like or dislike)"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id}/comments/{commentId}/reactions [post]
func (s *Server) ReactToComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.reactionService.ToggleCommentReaction(c.UserContext(), service.ToggleReactionInput{
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
		Kind:      req.Kind,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// ReactToReply toggles a like/dislike on a reply
// @Summary React to a reply
// @Tags community
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param replyId path int true "Reply ID"
// @Param request body ReactionRequest true "Reaction kind (like or dislike)"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id}/comments/{commentId}/replies/{replyId}/reactions [post]
func (s *Server) ReactToReply(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	replyID, err := s.parseID(c, "replyId")
	if err != nil {
		return nil
	}

	var req ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.reactionService.ToggleReplyReaction(c.UserContext(), service.ToggleReactionInput{
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
		ReplyID:   replyID,
		Kind:      req.Kind,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}
