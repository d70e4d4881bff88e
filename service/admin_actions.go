package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
)

// AdminActionService 执行管理后台下发的批量操作
type AdminActionService interface {
	// Execute 按实体与动作分派。不支持的组合返回 myErrors.ErrUnsupportedAdminAction；
	// 博客文章操作的发起账号不是发布者时返回 myErrors.ErrPermissionDenied。
	// 单个 ID 失败不会中断其余 ID，所有失败合并后返回。
	Execute(ctx context.Context, msg dto.AdminActionMessage) error
}

type adminActionService struct {
	db              *gorm.DB
	auth            AuthService
	blogManage      BlogManageService
	testimonialRepo mysql.TestimonialRepository
	contactRepo     mysql.ContactMessageRepository
	donationRepo    mysql.DonationRepository
	partnerRepo     mysql.PartnerRepository
	galleryRepo     mysql.GalleryRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewAdminActionService 创建后台批量操作服务
func NewAdminActionService(
	db *gorm.DB,
	auth AuthService,
	blogManage BlogManageService,
	testimonialRepo mysql.TestimonialRepository,
	contactRepo mysql.ContactMessageRepository,
	donationRepo mysql.DonationRepository,
	partnerRepo mysql.PartnerRepository,
	galleryRepo mysql.GalleryRepository,
	logger *zap.Logger,
) AdminActionService {
	return &adminActionService{
		db:              db,
		auth:            auth,
		blogManage:      blogManage,
		testimonialRepo: testimonialRepo,
		contactRepo:     contactRepo,
		donationRepo:    donationRepo,
		partnerRepo:     partnerRepo,
		galleryRepo:     galleryRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *adminActionService) Execute(ctx context.Context, msg dto.AdminActionMessage) error {
	if len(msg.IDs) == 0 {
		return nil
	}
	switch msg.Entity {
	case dto.AdminEntityBlogPost:
		return s.blogPostAction(ctx, msg)
	case dto.AdminEntityTestimonial:
		return s.testimonialAction(ctx, msg)
	case dto.AdminEntityContactMessage:
		return s.contactAction(ctx, msg)
	case dto.AdminEntityDonation:
		return s.donationAction(ctx, msg)
	case dto.AdminEntityPartner:
		return s.partnerAction(ctx, msg)
	}
	return fmt.Errorf("%w: %s", myErrors.ErrUnsupportedAdminAction, msg.Entity)
}

func (s *adminActionService) blogPostAction(ctx context.Context, msg dto.AdminActionMessage) error {
	actor, err := s.auth.ResolveActor(ctx, msg.ActorID)
	if err != nil {
		return fmt.Errorf("%w: 无法识别操作账号 %d", myErrors.ErrPermissionDenied, msg.ActorID)
	}
	if !actor.IsPublisher() {
		return myErrors.ErrPermissionDenied
	}

	var apply func(id uint64) error
	switch msg.Action {
	case dto.AdminActionPublish, dto.AdminActionArchive, dto.AdminActionDraft:
		to := map[string]enums.PostStatus{
			dto.AdminActionPublish: enums.PostStatusPublished,
			dto.AdminActionArchive: enums.PostStatusArchived,
			dto.AdminActionDraft:   enums.PostStatusDraft,
		}[msg.Action]
		apply = func(id uint64) error { return s.blogManage.ChangeStatus(ctx, actor, id, to) }
	case dto.AdminActionFeature, dto.AdminActionUnfeature:
		featured := msg.Action == dto.AdminActionFeature
		apply = func(id uint64) error { return s.blogManage.SetFeatured(ctx, actor, id, featured) }
	case dto.AdminActionDelete:
		apply = func(id uint64) error { return s.blogManage.DeletePost(ctx, actor, id) }
	default:
		return fmt.Errorf("%w: %s/%s", myErrors.ErrUnsupportedAdminAction, msg.Entity, msg.Action)
	}

	var errs []error
	for _, id := range msg.IDs {
		if err := apply(id); err != nil {
			s.logger.Warn("批量操作单篇文章失败",
				zap.String("eventID", msg.EventID),
				zap.String("action", msg.Action),
				zap.Uint64("postID", id),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("文章 %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (s *adminActionService) testimonialAction(ctx context.Context, msg dto.AdminActionMessage) error {
	var (
		field string
		value bool
	)
	switch msg.Action {
	case dto.AdminActionApprove, dto.AdminActionUnapprove:
		field, value = mysql.TestimonialFieldApproved, msg.Action == dto.AdminActionApprove
	case dto.AdminActionFeature, dto.AdminActionUnfeature:
		field, value = mysql.TestimonialFieldFeatured, msg.Action == dto.AdminActionFeature
	default:
		return fmt.Errorf("%w: %s/%s", myErrors.ErrUnsupportedAdminAction, msg.Entity, msg.Action)
	}
	affected, err := s.testimonialRepo.SetFlag(ctx, msg.IDs, field, value)
	if err != nil {
		return err
	}
	s.logAffected(msg, affected)
	return nil
}

func (s *adminActionService) contactAction(ctx context.Context, msg dto.AdminActionMessage) error {
	var (
		affected int64
		err      error
	)
	switch msg.Action {
	case dto.AdminActionMarkRead:
		affected, err = s.contactRepo.MarkRead(ctx, msg.IDs)
	case dto.AdminActionMarkResponded:
		affected, err = s.contactRepo.MarkResponded(ctx, msg.IDs)
	default:
		return fmt.Errorf("%w: %s/%s", myErrors.ErrUnsupportedAdminAction, msg.Entity, msg.Action)
	}
	if err != nil {
		return err
	}
	s.logAffected(msg, affected)
	return nil
}

func (s *adminActionService) donationAction(ctx context.Context, msg dto.AdminActionMessage) error {
	statuses := map[string]enums.PaymentStatus{
		dto.AdminActionComplete: enums.PaymentCompleted,
		dto.AdminActionFail:     enums.PaymentFailed,
		dto.AdminActionRefund:   enums.PaymentRefunded,
	}
	status, ok := statuses[msg.Action]
	if !ok {
		return fmt.Errorf("%w: %s/%s", myErrors.ErrUnsupportedAdminAction, msg.Entity, msg.Action)
	}
	affected, err := s.donationRepo.UpdateStatus(ctx, msg.IDs, status, s.now())
	if err != nil {
		return err
	}
	s.logAffected(msg, affected)
	return nil
}

// partnerAction 删除合作伙伴前先把捐赠与图库中的引用置空
func (s *adminActionService) partnerAction(ctx context.Context, msg dto.AdminActionMessage) error {
	if msg.Action != dto.AdminActionDelete {
		return fmt.Errorf("%w: %s/%s", myErrors.ErrUnsupportedAdminAction, msg.Entity, msg.Action)
	}
	var errs []error
	for _, id := range msg.IDs {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.donationRepo.ClearPartner(ctx, tx, id); err != nil {
				return err
			}
			if err := s.galleryRepo.ClearPartner(ctx, tx, id); err != nil {
				return err
			}
			return s.partnerRepo.DeletePartner(ctx, tx, id)
		})
		if err != nil {
			s.logger.Warn("删除合作伙伴失败", zap.String("eventID", msg.EventID), zap.Uint64("partnerID", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("合作伙伴 %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (s *adminActionService) logAffected(msg dto.AdminActionMessage, affected int64) {
	s.logger.Info("后台批量操作已执行",
		zap.String("eventID", msg.EventID),
		zap.String("entity", msg.Entity),
		zap.String("action", msg.Action),
		zap.Int("requested", len(msg.IDs)),
		zap.Int64("affected", affected))
}
