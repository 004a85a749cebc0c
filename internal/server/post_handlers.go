package server

import (
	"sensei/internal/feed"
	"sensei/internal/models"
	"sensei/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest represents the create post request body
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// UpdatePostRequest represents the update post request body
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// feedCriteria builds filter and sort criteria from query parameters.
func feedCriteria(c *fiber.Ctx) feed.Criteria {
	return feed.Criteria{
		Keyword:   c.Query("keyword"),
		Category:  c.Query("category"),
		Likes:     feed.ParseDirection(c.Query("likes")),
		Dislikes:  feed.ParseDirection(c.Query("dislikes")),
		CreatedAt: feed.ParseDirection(c.Query("created")),
		UpdatedAt: feed.ParseDirection(c.Query("updated")),
	}
}

// GetFeed returns the community feed, optionally filtered and sorted
// @Summary Get the community feed
// @Description List posts with optional keyword/category filters and sort directions
// @Tags community
// @Produce json
// @Param keyword query string false "Keyword filter (title or author)"
// @Param category query string false "Category filter"
// @Param likes query string false "Sort by likes (ascending|descending)"
// @Param dislikes query string false "Sort by dislikes (ascending|descending)"
// @Param created query string false "Sort by creation time (ascending|descending)"
// @Param updated query string false "Sort by update time (ascending|descending)"
// @Success 200 {array} models.Post
// @Router /api/community/posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListFeed(c.UserContext(), userID, feedCriteria(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}

// GetPost returns a single post with its comment tree
// @Summary Get a post
// @Description Fetch a post with comments, replies and reaction counts
// @Tags community
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /api/community/posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.UserContext(), postID, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// CreatePost creates a new community post
// @Summary Create a post
// @Tags community
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post details"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits a post's title and content
// @Summary Update a post
// @Tags community
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Updated fields"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:  userID,
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost deletes a post along with its comments, replies and reactions
// @Summary Delete a post
// @Tags community
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// VerifyOwnership reports whether the caller authored the post
// @Summary Check post ownership
// @Tags community
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/community/posts/{id}/ownership [get]
func (s *Server) VerifyOwnership(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isAuthor, err := s.postService.VerifyOwnership(c.UserContext(), postID, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"is_author": isAuthor})
}
