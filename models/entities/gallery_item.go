package entities

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// GalleryItem 图库条目，可关联合作伙伴或文章，被关联方删除后外键置空
type GalleryItem struct {
	ID          uint64                `gorm:"primaryKey;autoIncrement"`
	Title       string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Image       string                `gorm:"type:varchar(1024);not null"`
	Category    enums.GalleryCategory `gorm:"type:varchar(20);not null;default:other;index"`

	PartnerID  *uint64   `gorm:"index"`
	Partner    *Partner  `gorm:"foreignKey:PartnerID;constraint:OnDelete:SET NULL"`
	BlogPostID *uint64   `gorm:"index"`
	BlogPost   *BlogPost `gorm:"foreignKey:BlogPostID;constraint:OnDelete:SET NULL"`

	IsFeatured   bool `gorm:"not null"`
	DisplayOrder int  `gorm:"not null;default:0"`
	CreatedAt    time.Time
}
