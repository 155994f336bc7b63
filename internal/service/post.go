package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

// CreatePostInput carries a new post. The author is always the acting user;
// callers cannot publish on someone else's behalf.
type CreatePostInput struct {
	AuthorID  uint
	Text      string
	GroupSlug string
	ImageURL  string
}

// UpdatePostInput carries an edit to an existing post.
type UpdatePostInput struct {
	ActorID   uint
	PostID    uint
	Text      string
	GroupSlug string
	ImageURL  string
}

// PostDetail is a post with its comment thread, as shown on the detail view.
type PostDetail struct {
	Post            *models.Post      `json:"post"`
	Comments        []*models.Comment `json:"comments"`
	AuthorPostCount int64             `json:"author_post_count"`
}

// PostService validates and applies post mutations. Each write runs inside a
// single storage transaction.
type PostService struct {
	db          *gorm.DB
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
}

// NewPostService creates a new post service.
func NewPostService(db *gorm.DB, postRepo repository.PostRepository, groupRepo repository.GroupRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		db:          db,
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
	}
}

// resolveGroupID maps an optional group slug to its ID. An unknown slug is a
// validation failure: the form offered a group that does not exist.
func (s *PostService) resolveGroupID(ctx context.Context, groupRepo repository.GroupRepository, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError("Unknown group: " + slug)
		}
		return nil, err
	}
	return &group.ID, nil
}

// CreatePost validates input and publishes a new post for the acting user.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	var post *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groupRepo := repository.NewGroupRepository(tx)
		groupID, err := s.resolveGroupID(ctx, groupRepo, in.GroupSlug)
		if err != nil {
			return err
		}

		post = &models.Post{
			Text:     in.Text,
			AuthorID: in.AuthorID,
			GroupID:  groupID,
			ImageURL: in.ImageURL,
		}
		return repository.NewPostRepository(tx).Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies an edit when the actor owns the post. A non-author edit
// is Forbidden and performs no mutation; the post's creation time and author
// are never touched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepository(tx)
		post, err := postRepo.GetByID(ctx, in.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != in.ActorID {
			return models.NewForbiddenError("Only the author may edit a post")
		}

		groupID, err := s.resolveGroupID(ctx, repository.NewGroupRepository(tx), in.GroupSlug)
		if err != nil {
			return err
		}

		post.Text = in.Text
		post.GroupID = groupID
		post.ImageURL = in.ImageURL
		return postRepo.Update(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes the actor's own post. The global feed cache is left
// alone; stale pages age out with their TTL.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepository(tx)
		post, err := postRepo.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actorID {
			return models.NewForbiddenError("Only the author may delete a post")
		}
		return postRepo.Delete(ctx, postID)
	})
}

// GetPostDetail returns a post with its comment thread and the author's
// total post count.
func (s *PostService) GetPostDetail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	authorPosts, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &PostDetail{
		Post:            post,
		Comments:        comments,
		AuthorPostCount: authorPosts,
	}, nil
}
