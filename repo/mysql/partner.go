package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/entities"
)

// PartnerRepository 合作伙伴的持久化操作
type PartnerRepository interface {
	CreatePartner(ctx context.Context, partner *entities.Partner) error
	GetByID(ctx context.Context, id uint64) (*entities.Partner, error)
	// ListActive 按 display_order、name 排序，limit <= 0 表示不限
	ListActive(ctx context.Context, limit int) ([]*entities.Partner, error)
	CountActive(ctx context.Context) (int64, error)
	DeletePartner(ctx context.Context, db *gorm.DB, id uint64) error
}

type partnerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPartnerRepository(db *gorm.DB, logger *zap.Logger) PartnerRepository {
	return &partnerRepository{db: db, logger: logger}
}

func (r *partnerRepository) CreatePartner(ctx context.Context, partner *entities.Partner) error {
	return r.db.WithContext(ctx).Create(partner).Error
}

func (r *partnerRepository) GetByID(ctx context.Context, id uint64) (*entities.Partner, error) {
	var partner entities.Partner
	if err := r.db.WithContext(ctx).First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取合作伙伴失败", zap.Uint64("partnerID", id), zap.Error(err))
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) ListActive(ctx context.Context, limit int) ([]*entities.Partner, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true).Order("display_order ASC, name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var partners []*entities.Partner
	if err := query.Find(&partners).Error; err != nil {
		r.logger.Error("查询合作伙伴列表失败", zap.Error(err))
		return nil, err
	}
	return partners, nil
}

func (r *partnerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Partner{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *partnerRepository) DeletePartner(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Partner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
