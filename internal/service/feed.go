// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"fmt"

	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// Feed is one page of posts for a viewing context together with its
// presentation metadata.
type Feed struct {
	Title string          `json:"title"`
	Posts []*models.Post  `json:"posts"`
	Group *models.Group   `json:"group,omitempty"`
	Page  pagination.Page `json:"page"`
}

// ProfileFeed is an author's feed page plus the viewer-facing profile state.
type ProfileFeed struct {
	Feed
	Author         *models.User `json:"author"`
	PostCount      int64        `json:"post_count"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
	Following      bool         `json:"following"`
}

// FeedService assembles the four feed contexts. It composes repository reads
// and pagination; it never mutates anything.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GlobalFeed returns the requested page of all posts, newest first.
func (s *FeedService) GlobalFeed(ctx context.Context, pageNum int) (*Feed, error) {
	total, err := s.postRepo.CountGlobal(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	page := pagination.Paginate(pageNum, total)
	posts, err := s.postRepo.ListGlobal(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Feed{
		Title: "Latest updates",
		Posts: posts,
		Page:  page,
	}, nil
}

// GroupFeed returns the requested page of a group's posts. Unknown slugs are
// NotFound.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, pageNum int) (*Feed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	page := pagination.Paginate(pageNum, total)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Feed{
		Title: fmt.Sprintf("Latest %d posts of group %s", total, group.Slug),
		Posts: posts,
		Group: group,
		Page:  page,
	}, nil
}

// ProfileFeed returns the requested page of an author's posts together with
// the author's total post count and whether the viewer follows them.
// viewerID 0 means anonymous, which is never "following".
func (s *FeedService) ProfileFeed(ctx context.Context, username string, viewerID uint, pageNum int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	page := pagination.Paginate(pageNum, total)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, author.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return &ProfileFeed{
		Feed: Feed{
			Title: fmt.Sprintf("Profile of %s", author.FullName()),
			Posts: posts,
			Page:  page,
		},
		Author:         author,
		PostCount:      total,
		FollowerCount:  followers,
		FollowingCount: followingCount,
		Following:      following,
	}, nil
}

// SubscriptionFeed returns the requested page of posts by authors the viewer
// follows. Following no one yields an empty first page, not an error.
func (s *FeedService) SubscriptionFeed(ctx context.Context, viewerID uint, pageNum int) (*Feed, error) {
	total, err := s.postRepo.CountFollowed(ctx, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	page := pagination.Paginate(pageNum, total)
	posts, err := s.postRepo.ListFollowed(ctx, viewerID, page.Limit, page.Offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Feed{
		Title: "Your subscriptions",
		Posts: posts,
		Page:  page,
	}, nil
}
