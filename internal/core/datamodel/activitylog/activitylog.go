package activitylog

import (
	"time"

	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"gorm.io/datatypes"
)

// ActivityLog rows are append-only. The migrations keep user_id free of a
// foreign key so the trail outlives the accounts it mentions.
type ActivityLog struct {
	ID         int64               `gorm:"primaryKey"`
	UserID     int64               `gorm:"column:user_id;not null;index"`
	User       *userDatamodel.User `gorm:"foreignKey:UserID"`
	Action     string              `gorm:"column:action;not null"`
	Resource   string              `gorm:"column:resource;not null"`
	Details    datatypes.JSONMap   `gorm:"column:details"`
	IPAddress  string              `gorm:"column:ip_address"`
	UserAgent  string              `gorm:"column:user_agent"`
	OccurredAt time.Time           `gorm:"column:occurred_at;not null;index"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
