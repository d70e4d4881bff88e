package mysql

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// SiteSettingsRepository 全站设置单例的持久化操作
type SiteSettingsRepository interface {
	// Get 读取单例，不存在时以默认值创建
	Get(ctx context.Context) (*entities.SiteSettings, error)
	// Save 主键强制为 1 后整体保存
	Save(ctx context.Context, settings *entities.SiteSettings) error
	// Delete 始终返回 myErrors.ErrSingletonDelete
	Delete(ctx context.Context) error
}

type siteSettingsRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSiteSettingsRepository(db *gorm.DB, logger *zap.Logger) SiteSettingsRepository {
	return &siteSettingsRepository{db: db, logger: logger}
}

func (r *siteSettingsRepository) Get(ctx context.Context) (*entities.SiteSettings, error) {
	settings := entities.SiteSettings{ID: constant.SiteSettingsSingletonID}
	err := r.db.WithContext(ctx).
		Where(entities.SiteSettings{ID: constant.SiteSettingsSingletonID}).
		Attrs(entities.SiteSettings{SiteName: entities.DefaultSiteName}).
		FirstOrCreate(&settings).Error
	if err != nil {
		r.logger.Error("读取全站设置失败", zap.Error(err))
		return nil, err
	}
	return &settings, nil
}

func (r *siteSettingsRepository) Save(ctx context.Context, settings *entities.SiteSettings) error {
	settings.ID = constant.SiteSettingsSingletonID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		r.logger.Error("保存全站设置失败", zap.Error(err))
		return err
	}
	return nil
}

func (r *siteSettingsRepository) Delete(ctx context.Context) error {
	return myErrors.ErrSingletonDelete
}
