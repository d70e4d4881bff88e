package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// SiteSettingsService 全站设置。启动时加载一次到进程内，读取不访问数据库；
// 更新时先写库，成功后再替换内存中的副本。
type SiteSettingsService interface {
	// Load 从数据库读取（不存在时以默认值创建）并替换内存副本
	Load(ctx context.Context) error
	// Current 返回内存中的设置副本
	Current() vo.SiteSettingsVO
	// Update 整体替换设置，仅发布者可用
	Update(ctx context.Context, actor workflow.Actor, req *dto.UpdateSiteSettingsRequest) (*vo.SiteSettingsVO, error)
}

type siteSettingsService struct {
	repo   mysql.SiteSettingsRepository
	logger *zap.Logger

	mu       sync.RWMutex
	settings entities.SiteSettings
}

// NewSiteSettingsService 创建全站设置服务，调用方需在启动时执行 Load
func NewSiteSettingsService(repo mysql.SiteSettingsRepository, logger *zap.Logger) SiteSettingsService {
	return &siteSettingsService{
		repo:     repo,
		logger:   logger,
		settings: entities.SiteSettings{SiteName: entities.DefaultSiteName},
	}
}

func (s *siteSettingsService) Load(ctx context.Context) error {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("加载站点设置失败: %w", err)
	}
	s.swap(settings)
	s.logger.Info("站点设置已加载", zap.String("siteName", settings.SiteName))
	return nil
}

func (s *siteSettingsService) Current() vo.SiteSettingsVO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return vo.NewSiteSettingsVO(&s.settings)
}

func (s *siteSettingsService) Update(ctx context.Context, actor workflow.Actor, req *dto.UpdateSiteSettingsRequest) (*vo.SiteSettingsVO, error) {
	if !actor.IsPublisher() {
		return nil, myErrors.ErrPermissionDenied
	}
	settings := &entities.SiteSettings{
		SiteName:          req.SiteName,
		Tagline:           req.Tagline,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
		Address:           req.Address,
		FacebookURL:       req.FacebookURL,
		TwitterURL:        req.TwitterURL,
		InstagramURL:      req.InstagramURL,
		LinkedinURL:       req.LinkedinURL,
		YoutubeURL:        req.YoutubeURL,
		MetaDescription:   req.MetaDescription,
		MetaKeywords:      req.MetaKeywords,
		GoogleAnalyticsID: req.GoogleAnalyticsID,
		FooterText:        req.FooterText,
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("保存站点设置失败: %w", err)
	}
	s.swap(settings)
	s.logger.Info("站点设置已更新", zap.Uint64("actorID", actor.AccountID))

	v := s.Current()
	return &v, nil
}

func (s *siteSettingsService) swap(settings *entities.SiteSettings) {
	s.mu.Lock()
	s.settings = *settings
	s.mu.Unlock()
}
