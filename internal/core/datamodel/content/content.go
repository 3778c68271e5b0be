package content

import (
	"time"

	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"gorm.io/datatypes"
)

type Content struct {
	ID        int64               `gorm:"primaryKey"`
	Title     string              `gorm:"column:title;size:200;not null"`
	Body      string              `gorm:"column:body;not null"`
	Type      string              `gorm:"column:type;not null"`
	Status    string              `gorm:"column:status;not null;default:draft;index"`
	Tags      datatypes.JSON      `gorm:"column:tags"`
	AuthorID  int64               `gorm:"column:author_id;not null;index"`
	Author    *userDatamodel.User `gorm:"foreignKey:AuthorID"`
	ParentID  *int64              `gorm:"column:parent_id;index"`
	Parent    *Content            `gorm:"foreignKey:ParentID"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Content) TableName() string {
	return "contents"
}
