package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal/content"
	contentDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/content"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) content.RepositoryAPI {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) scoped(ctx context.Context, filter content.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&contentDatamodel.Content{})
	if filter.PublishedOnly {
		q = q.Where("status = ?", string(content.StatusPublished))
	}
	return q
}

func (r *ContentRepository) List(ctx context.Context, filter content.Filter) ([]*contentDatamodel.Content, error) {
	var rows []*contentDatamodel.Content
	err := r.scoped(ctx, filter).
		Preload("Author").
		Preload("Parent").
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*contentDatamodel.Content, error) {
	var row contentDatamodel.Content
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Parent").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ContentRepository) Create(ctx context.Context, c *contentDatamodel.Content) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// Update writes the mutable columns only; author and type never change.
func (r *ContentRepository) Update(ctx context.Context, c *contentDatamodel.Content) error {
	return r.db.WithContext(ctx).Model(&contentDatamodel.Content{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":      c.Title,
			"body":       c.Body,
			"tags":       c.Tags,
			"updated_at": c.UpdatedAt,
		}).Error
}

func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&contentDatamodel.Content{}, id).Error
}

func (r *ContentRepository) Stats(ctx context.Context, filter content.Filter, since time.Time) (*content.StatsCounts, error) {
	var counts content.StatsCounts

	if err := r.scoped(ctx, filter).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := r.scoped(ctx, filter).Where("type = ?", string(content.TypePost)).Count(&counts.Posts).Error; err != nil {
		return nil, err
	}
	if err := r.scoped(ctx, filter).Where("type = ?", string(content.TypeComment)).Count(&counts.Comments).Error; err != nil {
		return nil, err
	}
	if err := r.scoped(ctx, filter).Where("created_at >= ?", since).Count(&counts.Recent).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
