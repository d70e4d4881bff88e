package entities

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// Testimonial 感言。公开提交的感言默认未审核，审核通过后才会在前台展示。
type Testimonial struct {
	ID              uint64                `gorm:"primaryKey;autoIncrement"`
	Name            string                `gorm:"type:varchar(200);not null"`
	Organization    string                `gorm:"type:varchar(200)"`
	TestimonialType enums.TestimonialType `gorm:"type:varchar(20);not null;default:personal;index"`
	Content         string                `gorm:"type:text;not null"`
	Image           string                `gorm:"type:varchar(1024)"`
	IsApproved      bool                  `gorm:"not null;index"`
	IsFeatured      bool                  `gorm:"not null"`
	DisplayOrder    int                   `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
