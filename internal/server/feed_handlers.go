package server

import (
	"encoding/json"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGlobalFeed handles GET /api/feed
//
// The rendered page is served through the TTL cache keyed by page number and
// query string. Post mutations do not invalidate entries; a page may be up
// to FeedTTL stale and that is accepted behavior.
func (s *Server) GetGlobalFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePage(c)
	key := cache.FeedPageKey(page, string(c.Request().URI().QueryString()))

	if body, ok := s.feedCache.Get(ctx, key); ok {
		middleware.FeedCacheRequests.WithLabelValues("hit").Inc()
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
	middleware.FeedCacheRequests.WithLabelValues("miss").Inc()

	feed, err := s.feedService.GlobalFeed(ctx, page)
	if err != nil {
		return respondError(c, err)
	}

	body, err := json.Marshal(feed)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	s.feedCache.Set(ctx, key, body, cache.FeedTTL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetGroupFeed handles GET /api/groups/:slug/posts
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// GetProfileFeed handles GET /api/profiles/:username
func (s *Server) GetProfileFeed(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)
	feed, err := s.feedService.ProfileFeed(c.Context(), c.Params("username"), viewerID, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// GetSubscriptionFeed handles GET /api/feed/following
func (s *Server) GetSubscriptionFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	feed, err := s.feedService.SubscriptionFeed(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// ListGroups handles GET /api/groups
func (s *Server) ListGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"groups": groups})
}
