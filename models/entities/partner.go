package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Partner 合作伙伴机构
// - 排序: display_order, name
type Partner struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	Name             string `gorm:"type:varchar(200);not null"`
	Logo             string `gorm:"type:varchar(1024)"`
	Description      string `gorm:"type:text"`
	MissionStatement string `gorm:"type:text"`
	Website          string `gorm:"type:varchar(255)"`
	Email            string `gorm:"type:varchar(254)"`
	Phone            string `gorm:"type:varchar(20)"`
	FacebookURL      string `gorm:"type:varchar(255)"`
	TwitterURL       string `gorm:"type:varchar(255)"`
	InstagramURL     string `gorm:"type:varchar(255)"`
	YoutubeURL       string `gorm:"type:varchar(255)"`
	FeaturedImage    string `gorm:"type:varchar(1024)"`

	// 详情页图集，最多三张，JSON 数组存储
	GalleryImages datatypes.JSONSlice[string]

	IsActive     bool `gorm:"not null;index"`
	DisplayOrder int  `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
