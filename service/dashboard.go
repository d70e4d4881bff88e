package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// DashboardService 后台首页统计
type DashboardService interface {
	// Stats 汇总计数与最近 5 条捐赠、留言、文章。作者看到的最近文章只包含自己的文章。
	Stats(ctx context.Context, actor workflow.Actor) (*vo.DashboardVO, error)
}

type dashboardService struct {
	postRepo        mysql.BlogPostRepository
	donationRepo    mysql.DonationRepository
	testimonialRepo mysql.TestimonialRepository
	contactRepo     mysql.ContactMessageRepository
	partnerRepo     mysql.PartnerRepository
	newsletterRepo  mysql.NewsletterRepository
	logger          *zap.Logger
}

// NewDashboardService 创建后台统计服务
func NewDashboardService(
	postRepo mysql.BlogPostRepository,
	donationRepo mysql.DonationRepository,
	testimonialRepo mysql.TestimonialRepository,
	contactRepo mysql.ContactMessageRepository,
	partnerRepo mysql.PartnerRepository,
	newsletterRepo mysql.NewsletterRepository,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		postRepo:        postRepo,
		donationRepo:    donationRepo,
		testimonialRepo: testimonialRepo,
		contactRepo:     contactRepo,
		partnerRepo:     partnerRepo,
		newsletterRepo:  newsletterRepo,
		logger:          logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context, actor workflow.Actor) (*vo.DashboardVO, error) {
	stats := &vo.DashboardVO{}
	// 各查询互不依赖，并发执行；每个 goroutine 只写自己的字段
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalDonations, err = s.donationRepo.SumCompleted(gctx)
		return wrapStat("捐赠总额", err)
	})
	g.Go(func() (err error) {
		stats.TotalPosts, err = s.postRepo.CountAll(gctx)
		return wrapStat("文章总数", err)
	})
	g.Go(func() (err error) {
		stats.PendingTestimonials, err = s.testimonialRepo.CountPending(gctx)
		return wrapStat("待审核感言", err)
	})
	g.Go(func() (err error) {
		stats.UnreadMessages, err = s.contactRepo.CountUnread(gctx)
		return wrapStat("未读留言", err)
	})
	g.Go(func() (err error) {
		stats.ActivePartners, err = s.partnerRepo.CountActive(gctx)
		return wrapStat("合作伙伴", err)
	})
	g.Go(func() (err error) {
		stats.ActiveSubscribers, err = s.newsletterRepo.CountActive(gctx)
		return wrapStat("订阅者", err)
	})
	g.Go(func() error {
		donations, err := s.donationRepo.ListRecent(gctx, constant.DashboardRecentItemsLimit)
		if err != nil {
			return wrapStat("最近捐赠", err)
		}
		stats.RecentDonations = make([]vo.DonationSummaryVO, 0, len(donations))
		for _, d := range donations {
			receipt := ""
			if d.ReceiptNumber != nil {
				receipt = *d.ReceiptNumber
			}
			stats.RecentDonations = append(stats.RecentDonations, vo.DonationSummaryVO{
				ID:            d.ID,
				DonorName:     d.DonorName,
				Amount:        d.Amount,
				Currency:      d.Currency,
				PaymentStatus: d.PaymentStatus,
				ReceiptNumber: receipt,
				CreatedAt:     d.CreatedAt,
			})
		}
		return nil
	})
	g.Go(func() error {
		messages, err := s.contactRepo.ListRecent(gctx, constant.DashboardRecentItemsLimit)
		if err != nil {
			return wrapStat("最近留言", err)
		}
		stats.RecentMessages = make([]vo.MessageSummaryVO, 0, len(messages))
		for _, m := range messages {
			stats.RecentMessages = append(stats.RecentMessages, vo.MessageSummaryVO{
				ID:          m.ID,
				Name:        m.Name,
				Email:       m.Email,
				Subject:     m.Subject,
				InquiryType: m.InquiryType,
				IsRead:      m.IsRead,
				CreatedAt:   m.CreatedAt,
			})
		}
		return nil
	})
	g.Go(func() error {
		posts, _, err := s.postRepo.ListForManagement(gctx, dto.ManagePostFilter{
			AuthorID: workflow.ListScope(actor),
			Limit:    constant.DashboardRecentItemsLimit,
		})
		if err != nil {
			return wrapStat("最近文章", err)
		}
		stats.RecentPosts = make([]vo.ManagePostVO, 0, len(posts))
		for _, p := range posts {
			stats.RecentPosts = append(stats.RecentPosts, vo.NewManagePostVO(p))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("汇总后台统计失败", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

func wrapStat(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("统计%s失败: %w", name, err)
}
