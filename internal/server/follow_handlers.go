package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/profiles/:username/follow. Following
// yourself or an author you already follow is a quiet no-op.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	author, err := s.followService.Follow(c.Context(), userID, username)
	if err != nil {
		return respondError(c, err)
	}
	return redirect(c, profilePath(author.Username))
}

// UnfollowAuthor handles POST /api/profiles/:username/unfollow. Removing an
// edge that does not exist is a 404.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	author, err := s.followService.Unfollow(c.Context(), userID, username)
	if err != nil {
		return respondError(c, err)
	}
	return redirect(c, profilePath(author.Username))
}
