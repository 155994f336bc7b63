package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text     string `json:"text"`
	Group    string `json:"group,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// GetPost handles GET /api/posts/:id — the post detail view with its
// comment thread.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPostDetail(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost handles POST /api/posts. The author is always the acting user;
// success redirects to the author's profile feed.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  userID,
		Text:      req.Text,
		GroupSlug: req.Group,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	actor, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return redirect(c, profilePath(actor.Username))
}

// UpdatePost handles PUT /api/posts/:id. Edits by anyone but the author
// perform no mutation and redirect back to the post detail view.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:   userID,
		PostID:    postID,
		Text:      req.Text,
		GroupSlug: req.Group,
		ImageURL:  req.ImageURL,
	})
	if models.IsCode(err, models.CodeForbidden) {
		// Non-authors land back on the untouched post, not on an error page.
		return redirect(c, postDetailPath(postID))
	}
	if err != nil {
		return respondError(c, err)
	}

	return redirect(c, postDetailPath(postID))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		ActorID: userID,
		PostID:  postID,
		Text:    req.Text,
	}); err != nil {
		return respondError(c, err)
	}

	return redirect(c, postDetailPath(postID))
}
