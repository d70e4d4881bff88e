package entities

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// ContactMessage 联系表单留言
type ContactMessage struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement"`
	Name          string            `gorm:"type:varchar(200);not null"`
	Email         string            `gorm:"type:varchar(254);not null"`
	Phone         string            `gorm:"type:varchar(20)"`
	InquiryType   enums.InquiryType `gorm:"type:varchar(20);not null;default:general"`
	Subject       string            `gorm:"type:varchar(200);not null"`
	Message       string            `gorm:"type:text;not null"`
	IsRead        bool              `gorm:"not null;index"`
	IsResponded   bool              `gorm:"not null"`
	ResponseNotes string            `gorm:"type:text"`
	CreatedAt     time.Time         `gorm:"index"`
}
