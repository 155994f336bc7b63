package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations. Groups are
// created through seeding / back office tooling, so the public surface is
// read-heavy.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Delete(ctx context.Context, id uint) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

// Delete removes a group. Posts referencing it keep existing with their
// group reference cleared by the SET NULL constraint.
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Group{}, id).Error
}
