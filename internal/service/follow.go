package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// FollowService applies follow and unfollow actions between the acting user
// and a target author, addressed by username.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the follow edge from the actor to the target author.
// Following yourself and re-following are silent no-ops, never errors;
// callers rely on this idempotence. Unknown usernames are NotFound.
func (s *FollowService) Follow(ctx context.Context, actorID uint, targetUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if author.ID == actorID {
		return author, nil
	}

	if err := s.followRepo.Follow(ctx, actorID, author.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return author, nil
}

// Unfollow removes the follow edge from the actor to the target author.
// A missing edge (or unknown username) is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, actorID uint, targetUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, actorID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}
