package entities

import "time"

// NewsletterSubscriber 邮件订阅者，email 唯一
type NewsletterSubscriber struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Email          string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Name           string `gorm:"type:varchar(200)"`
	IsActive       bool   `gorm:"not null;index"`
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}
