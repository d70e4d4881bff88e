package entities

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// StaffAccount 后台员工账号，角色为封闭枚举 {publisher, author}
type StaffAccount struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	Username     string          `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string          `gorm:"type:varchar(254)"`
	DisplayName  string          `gorm:"type:varchar(150)"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	Role         enums.StaffRole `gorm:"type:varchar(20);not null;index"`
	IsActive     bool            `gorm:"not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
