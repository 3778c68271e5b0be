package postgres

import (
	"context"

	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	activitylogDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/activitylog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) activitylog.RepositoryAPI {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, entry *activitylogDatamodel.ActivityLog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *ActivityLogRepository) List(ctx context.Context, offset, limit int) ([]*activitylogDatamodel.ActivityLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&activitylogDatamodel.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*activitylogDatamodel.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("occurred_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
