package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
)

// SiteContentService 公开页面的只读聚合数据
type SiteContentService interface {
	Home(ctx context.Context) (*vo.HomeVO, error)
	Mission(ctx context.Context) (*vo.MissionVO, error)
	About(ctx context.Context) (*vo.AboutVO, error)
	Partners(ctx context.Context) ([]vo.PartnerVO, error)
	// Testimonials 只返回已审核的感言
	Testimonials(ctx context.Context) ([]vo.TestimonialVO, error)
	Gallery(ctx context.Context, query dto.GalleryQuery) ([]vo.GalleryItemVO, error)
}

type siteContentService struct {
	blog            BlogPublicService
	settings        SiteSettingsService
	partnerRepo     mysql.PartnerRepository
	testimonialRepo mysql.TestimonialRepository
	galleryRepo     mysql.GalleryRepository
	logger          *zap.Logger
}

// NewSiteContentService 创建公开页面服务
func NewSiteContentService(
	blog BlogPublicService,
	settings SiteSettingsService,
	partnerRepo mysql.PartnerRepository,
	testimonialRepo mysql.TestimonialRepository,
	galleryRepo mysql.GalleryRepository,
	logger *zap.Logger,
) SiteContentService {
	return &siteContentService{
		blog:            blog,
		settings:        settings,
		partnerRepo:     partnerRepo,
		testimonialRepo: testimonialRepo,
		galleryRepo:     galleryRepo,
		logger:          logger,
	}
}

func (s *siteContentService) Home(ctx context.Context) (*vo.HomeVO, error) {
	posts, err := s.blog.FeaturedBlogs(ctx, constant.HomeFeaturedPostsLimit)
	if err != nil {
		return nil, err
	}
	partners, err := s.partnerRepo.ListActive(ctx, constant.HomePartnersLimit)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.testimonialRepo.ListApproved(ctx, dto.TestimonialFilter{
		FeaturedOnly: true,
		Limit:        constant.HomeTestimonialsLimit,
	})
	if err != nil {
		return nil, err
	}
	return &vo.HomeVO{
		FeaturedPosts: posts,
		Partners:      vo.MapPartners(partners),
		Testimonials:  vo.MapTestimonials(testimonials),
		Settings:      s.settings.Current(),
	}, nil
}

func (s *siteContentService) Mission(ctx context.Context) (*vo.MissionVO, error) {
	personal := enums.TestimonialPersonal
	testimonials, err := s.testimonialRepo.ListApproved(ctx, dto.TestimonialFilter{
		Type:  &personal,
		Limit: constant.MissionTestimonialsLimit,
	})
	if err != nil {
		return nil, err
	}
	impact := enums.GalleryImpact
	featured := true
	gallery, err := s.galleryRepo.ListItems(ctx, dto.GalleryFilter{
		Category: &impact,
		Featured: &featured,
		Limit:    constant.MissionImpactGalleryLimit,
	})
	if err != nil {
		return nil, err
	}
	return &vo.MissionVO{
		Testimonials:  vo.MapTestimonials(testimonials),
		ImpactGallery: vo.MapGalleryItems(gallery),
	}, nil
}

func (s *siteContentService) About(ctx context.Context) (*vo.AboutVO, error) {
	partners, err := s.partnerRepo.ListActive(ctx, 0)
	if err != nil {
		return nil, err
	}
	event := enums.GalleryEvent
	gallery, err := s.galleryRepo.ListItems(ctx, dto.GalleryFilter{
		Category: &event,
		Limit:    constant.AboutEventGalleryLimit,
	})
	if err != nil {
		return nil, err
	}
	return &vo.AboutVO{
		Partners:     vo.MapPartners(partners),
		EventGallery: vo.MapGalleryItems(gallery),
	}, nil
}

func (s *siteContentService) Partners(ctx context.Context) ([]vo.PartnerVO, error) {
	partners, err := s.partnerRepo.ListActive(ctx, 0)
	if err != nil {
		return nil, err
	}
	return vo.MapPartners(partners), nil
}

func (s *siteContentService) Testimonials(ctx context.Context) ([]vo.TestimonialVO, error) {
	list, err := s.testimonialRepo.ListApproved(ctx, dto.TestimonialFilter{})
	if err != nil {
		return nil, err
	}
	return vo.MapTestimonials(list), nil
}

func (s *siteContentService) Gallery(ctx context.Context, query dto.GalleryQuery) ([]vo.GalleryItemVO, error) {
	filter := dto.GalleryFilter{
		Featured: query.Featured,
		Limit:    query.Limit,
	}
	if query.Category != "" {
		category := query.Category
		filter.Category = &category
	}
	items, err := s.galleryRepo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	return vo.MapGalleryItems(items), nil
}
