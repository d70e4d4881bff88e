package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
)

// DonationRepository 捐赠记录的持久化操作
type DonationRepository interface {
	// CreateDonation 插入捐赠记录，receipt_number 留空，由 SetReceiptNumber 在同一事务内补写
	CreateDonation(ctx context.Context, db *gorm.DB, donation *entities.Donation) error
	// SetReceiptNumber 仅在 receipt_number 为 NULL 时写入，已有编号不会被覆盖
	SetReceiptNumber(ctx context.Context, db *gorm.DB, id uint64, receipt string) error
	GetByID(ctx context.Context, id uint64) (*entities.Donation, error)
	// UpdateStatus 批量修改支付状态；变为 completed 时只对 completed_at 为空的记录写入完成时间
	UpdateStatus(ctx context.Context, ids []uint64, status enums.PaymentStatus, now time.Time) (int64, error)
	SumCompleted(ctx context.Context) (float64, error)
	ListRecent(ctx context.Context, limit int) ([]*entities.Donation, error)
	// ClearPartner 合作伙伴删除时把关联的捐赠记录外键置空
	ClearPartner(ctx context.Context, db *gorm.DB, partnerID uint64) error
}

type donationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDonationRepository(db *gorm.DB, logger *zap.Logger) DonationRepository {
	return &donationRepository{db: db, logger: logger}
}

func (r *donationRepository) CreateDonation(ctx context.Context, db *gorm.DB, donation *entities.Donation) error {
	donation.ReceiptNumber = nil
	return db.WithContext(ctx).Omit("Partner").Create(donation).Error
}

func (r *donationRepository) SetReceiptNumber(ctx context.Context, db *gorm.DB, id uint64, receipt string) error {
	result := db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND receipt_number IS NULL", id).
		UpdateColumn("receipt_number", receipt)
	if result.Error != nil {
		r.logger.Error("写入捐赠收据编号失败", zap.Uint64("donationID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id uint64) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).Preload("Partner").First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) UpdateStatus(ctx context.Context, ids []uint64, status enums.PaymentStatus, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Donation{}).Where("id IN ?", ids).UpdateColumn("payment_status", status)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if status != enums.PaymentCompleted {
			return nil
		}
		return tx.Model(&entities.Donation{}).
			Where("id IN ? AND completed_at IS NULL", ids).
			UpdateColumn("completed_at", now).Error
	})
	if err != nil {
		r.logger.Error("批量修改捐赠状态失败", zap.Int("count", len(ids)), zap.String("status", string(status)), zap.Error(err))
		return 0, err
	}
	return affected, nil
}

func (r *donationRepository) SumCompleted(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("payment_status = ?", enums.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *donationRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Donation, error) {
	var list []*entities.Donation
	err := r.db.WithContext(ctx).Preload("Partner").Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *donationRepository) ClearPartner(ctx context.Context, db *gorm.DB, partnerID uint64) error {
	return db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("partner_id = ?", partnerID).
		UpdateColumn("partner_id", nil).Error
}
