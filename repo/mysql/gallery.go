package mysql

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
)

// GalleryRepository 图库条目的持久化操作
type GalleryRepository interface {
	CreateItem(ctx context.Context, item *entities.GalleryItem) error
	// ListItems 按 display_order、创建时间倒序
	ListItems(ctx context.Context, filter dto.GalleryFilter) ([]*entities.GalleryItem, error)
	ClearPartner(ctx context.Context, db *gorm.DB, partnerID uint64) error
	ClearBlogPost(ctx context.Context, db *gorm.DB, postID uint64) error
}

type galleryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGalleryRepository(db *gorm.DB, logger *zap.Logger) GalleryRepository {
	return &galleryRepository{db: db, logger: logger}
}

func (r *galleryRepository) CreateItem(ctx context.Context, item *entities.GalleryItem) error {
	return r.db.WithContext(ctx).Omit("Partner", "BlogPost").Create(item).Error
}

func (r *galleryRepository) ListItems(ctx context.Context, filter dto.GalleryFilter) ([]*entities.GalleryItem, error) {
	query := r.db.WithContext(ctx).Model(&entities.GalleryItem{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var items []*entities.GalleryItem
	if err := query.Order("display_order ASC, created_at DESC").Find(&items).Error; err != nil {
		r.logger.Error("查询图库失败", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *galleryRepository) ClearPartner(ctx context.Context, db *gorm.DB, partnerID uint64) error {
	return db.WithContext(ctx).Model(&entities.GalleryItem{}).Where("partner_id = ?", partnerID).UpdateColumn("partner_id", nil).Error
}

func (r *galleryRepository) ClearBlogPost(ctx context.Context, db *gorm.DB, postID uint64) error {
	return db.WithContext(ctx).Model(&entities.GalleryItem{}).Where("blog_post_id = ?", postID).UpdateColumn("blog_post_id", nil).Error
}
