package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

// AddCommentInput carries a new comment. The author is always the acting
// user.
type AddCommentInput struct {
	ActorID uint
	PostID  uint
	Text    string
}

// CommentService validates and applies comment creation. Comments are
// append-only, so creation is the whole mutation surface.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(db *gorm.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment appends a comment to an existing post. Any authenticated user
// may comment on any post; the post must exist. The lookup and insert run in
// one transaction so a comment row can never outlive its post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewPostRepository(tx).GetByID(ctx, in.PostID); err != nil {
			return err
		}

		comment = &models.Comment{
			PostID:   in.PostID,
			AuthorID: in.ActorID,
			Text:     in.Text,
		}
		return repository.NewCommentRepository(tx).Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}
