package entities

import (
	"fmt"
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// Donation 捐赠记录。系统只记录捐赠，不发起任何支付。
type Donation struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	DonorName  string `gorm:"type:varchar(200);not null"`
	DonorEmail string `gorm:"type:varchar(254);not null"`
	DonorPhone string `gorm:"type:varchar(20)"`

	Amount   float64 `gorm:"type:decimal(10,2);not null"`
	Currency string  `gorm:"type:varchar(3);not null"`

	PaymentMethod enums.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentStatus enums.PaymentStatus `gorm:"type:varchar(20);not null;default:pending;index"`

	Purpose string `gorm:"type:varchar(200)"`

	// 指定资助的合作伙伴，伙伴删除后置空
	PartnerID *uint64  `gorm:"index"`
	Partner   *Partner `gorm:"foreignKey:PartnerID;constraint:OnDelete:SET NULL"`

	TransactionID string `gorm:"type:varchar(100)"`

	// 收据编号，首次保存后由创建日期与行 ID 生成，之后不再变化。
	// 插入时为 NULL，唯一索引允许多个 NULL。
	ReceiptNumber *string `gorm:"type:varchar(50);uniqueIndex"`

	IsRecurring bool `gorm:"not null"`
	IsAnonymous bool `gorm:"not null"`

	CreatedAt   time.Time `gorm:"index"`
	CompletedAt *time.Time
}

// BuildReceiptNumber 按 "<前缀>-YYYYMMDD-<ID>" 生成收据编号，ID 至少补齐 4 位
func BuildReceiptNumber(prefix string, createdAt time.Time, id uint64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, createdAt.Format("20060102"), id)
}
