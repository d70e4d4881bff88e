package mysql

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
)

// 可被批量修改的感言布尔字段
const (
	TestimonialFieldApproved = "is_approved"
	TestimonialFieldFeatured = "is_featured"
)

// TestimonialRepository 感言的持久化操作
type TestimonialRepository interface {
	CreateTestimonial(ctx context.Context, db *gorm.DB, t *entities.Testimonial) error
	// ListApproved 只返回已审核的感言，按 display_order、创建时间倒序
	ListApproved(ctx context.Context, filter dto.TestimonialFilter) ([]*entities.Testimonial, error)
	CountPending(ctx context.Context) (int64, error)
	// SetFlag 批量修改 is_approved / is_featured，返回受影响行数
	SetFlag(ctx context.Context, ids []uint64, field string, value bool) (int64, error)
}

type testimonialRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTestimonialRepository(db *gorm.DB, logger *zap.Logger) TestimonialRepository {
	return &testimonialRepository{db: db, logger: logger}
}

func (r *testimonialRepository) CreateTestimonial(ctx context.Context, db *gorm.DB, t *entities.Testimonial) error {
	return db.WithContext(ctx).Create(t).Error
}

func (r *testimonialRepository) ListApproved(ctx context.Context, filter dto.TestimonialFilter) ([]*entities.Testimonial, error) {
	query := r.db.WithContext(ctx).Where("is_approved = ?", true)
	if filter.Type != nil {
		query = query.Where("testimonial_type = ?", *filter.Type)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var list []*entities.Testimonial
	if err := query.Order("display_order ASC, created_at DESC").Find(&list).Error; err != nil {
		r.logger.Error("查询感言失败", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *testimonialRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Testimonial{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}

func (r *testimonialRepository) SetFlag(ctx context.Context, ids []uint64, field string, value bool) (int64, error) {
	if field != TestimonialFieldApproved && field != TestimonialFieldFeatured {
		return 0, fmt.Errorf("不支持修改的感言字段: %s", field)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Testimonial{}).Where("id IN ?", ids).Update(field, value)
	return result.RowsAffected, result.Error
}
