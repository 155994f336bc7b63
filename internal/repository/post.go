package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// feedOrder is the canonical feed ordering: newest first, ID as a stable
// tiebreak for posts created in the same instant.
const feedOrder = "posts.created_at DESC, posts.id DESC"

// PostRepository defines the interface for post data operations. The List*/
// Count* pairs back the four feed contexts; each List window is expected to
// be driven by pagination metadata computed from the matching Count.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	ListGlobal(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountGlobal(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListFollowed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error)
	CountFollowed(ctx context.Context, viewerID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Update persists edited fields. Select limits the write so CreatedAt and
// AuthorID can never change through an edit.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).
		Model(post).
		Select("text", "group_id", "image_url").
		Updates(map[string]interface{}{
			"text":      post.Text,
			"group_id":  post.GroupID,
			"image_url": post.ImageURL,
		}).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) ListGlobal(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountGlobal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("group_id = ?", groupID).
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("author_id = ?", authorID).
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListFollowed selects posts whose author appears in the follow-edge set
// where the follower is the viewer. An explicit join keeps the subscription
// feed a single query.
func (r *postRepository) ListFollowed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.user_id = ?", viewerID).
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountFollowed(ctx context.Context, viewerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.user_id = ?", viewerID).
		Count(&count).Error
	return count, err
}
