package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/dependencies"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/mq/producer"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
)

// FormsService 处理公开表单：联系留言、感言投稿、捐赠登记、邮件订阅。
// 请求参数的格式校验在 Controller 层完成，这里只负责业务规则与持久化。
type FormsService interface {
	SubmitContact(ctx context.Context, req *dto.ContactRequest) (*vo.ContactReceiptVO, error)

	// SubmitTestimonial 保存感言，审核状态强制为未审核；image 可为 nil
	SubmitTestimonial(ctx context.Context, req *dto.TestimonialRequest, image *multipart.FileHeader) (*vo.TestimonialReceiptVO, error)

	// RecordDonation 登记捐赠，状态强制为 pending，并在同一事务内生成收据编号
	RecordDonation(ctx context.Context, req *dto.DonationRequest) (*vo.DonationReceiptVO, error)

	// Subscribe 订阅邮件。已订阅时不报错，返回 AlreadySubscribed=true；已退订的邮箱重新激活。
	Subscribe(ctx context.Context, req *dto.NewsletterSubscribeRequest) (*vo.NewsletterVO, error)

	// Unsubscribe 退订，邮箱不存在返回 commonerrors.ErrRepoNotFound
	Unsubscribe(ctx context.Context, req *dto.NewsletterUnsubscribeRequest) (*vo.NewsletterVO, error)
}

type formsService struct {
	db              *gorm.DB
	contactRepo     mysql.ContactMessageRepository
	testimonialRepo mysql.TestimonialRepository
	donationRepo    mysql.DonationRepository
	partnerRepo     mysql.PartnerRepository
	newsletterRepo  mysql.NewsletterRepository
	media           *mediaStore
	kafkaSvc        *producer.KafkaProducer // 可为 nil
	receiptPrefix   string
	defaultCurrency string
	logger          *zap.Logger
	now             func() time.Time
}

// NewFormsService 创建公开表单服务
func NewFormsService(
	db *gorm.DB,
	contactRepo mysql.ContactMessageRepository,
	testimonialRepo mysql.TestimonialRepository,
	donationRepo mysql.DonationRepository,
	partnerRepo mysql.PartnerRepository,
	newsletterRepo mysql.NewsletterRepository,
	cosClient dependencies.COSClientInterface,
	opts config.SiteOptions,
	kafkaSvc *producer.KafkaProducer,
	logger *zap.Logger,
) FormsService {
	prefix := opts.ReceiptPrefix
	if prefix == "" {
		prefix = constant.DefaultDonationReceiptPrefix
	}
	currency := strings.ToUpper(opts.DefaultCurrency)
	if currency == "" {
		currency = constant.DefaultDonationCurrency
	}
	return &formsService{
		db:              db,
		contactRepo:     contactRepo,
		testimonialRepo: testimonialRepo,
		donationRepo:    donationRepo,
		partnerRepo:     partnerRepo,
		newsletterRepo:  newsletterRepo,
		media:           newMediaStore(cosClient, opts.MaxUploadSizeMB, logger),
		kafkaSvc:        kafkaSvc,
		receiptPrefix:   prefix,
		defaultCurrency: currency,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *formsService) SubmitContact(ctx context.Context, req *dto.ContactRequest) (*vo.ContactReceiptVO, error) {
	inquiry := req.InquiryType
	if inquiry == "" {
		inquiry = enums.InquiryGeneral
	}
	msg := &entities.ContactMessage{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       req.Phone,
		InquiryType: inquiry,
		Subject:     strings.TrimSpace(req.Subject),
		Message:     req.Message,
	}
	if err := s.contactRepo.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("保存联系留言失败", zap.String("email", msg.Email), zap.Error(err))
		return nil, fmt.Errorf("保存联系留言失败: %w", err)
	}

	s.publishEngagementEvent(producer.EventContactReceived, msg.ID, map[string]interface{}{
		"inquiry_type": string(msg.InquiryType),
		"subject":      msg.Subject,
	})
	return &vo.ContactReceiptVO{ID: msg.ID, CreatedAt: msg.CreatedAt}, nil
}

func (s *formsService) SubmitTestimonial(ctx context.Context, req *dto.TestimonialRequest, image *multipart.FileHeader) (*vo.TestimonialReceiptVO, error) {
	asset, err := s.media.upload(ctx, constant.COSObjectKeyPrefixTestimonialImages, "testimonial", image)
	if err != nil {
		return nil, err
	}

	testimonialType := req.TestimonialType
	if testimonialType == "" {
		testimonialType = enums.TestimonialPersonal
	}
	t := &entities.Testimonial{
		Name:            strings.TrimSpace(req.Name),
		Organization:    req.Organization,
		TestimonialType: testimonialType,
		Content:         req.Content,
		IsApproved:      false,
		IsFeatured:      false,
	}
	if asset != nil {
		t.Image = asset.URL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.testimonialRepo.CreateTestimonial(ctx, tx, t)
	})
	if err != nil {
		s.media.discard(asset)
		s.logger.Error("保存感言失败", zap.String("name", t.Name), zap.Error(err))
		return nil, fmt.Errorf("保存感言失败: %w", err)
	}

	s.publishEngagementEvent(producer.EventTestimonialSubmitted, t.ID, map[string]interface{}{
		"testimonial_type": string(t.TestimonialType),
	})
	return &vo.TestimonialReceiptVO{ID: t.ID, IsApproved: t.IsApproved}, nil
}

func (s *formsService) RecordDonation(ctx context.Context, req *dto.DonationRequest) (*vo.DonationReceiptVO, error) {
	if req.PartnerID != nil {
		partner, err := s.partnerRepo.GetByID(ctx, *req.PartnerID)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				return nil, myErrors.ErrInvalidPartner
			}
			return nil, err
		}
		if !partner.IsActive {
			return nil, myErrors.ErrInvalidPartner
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	donation := &entities.Donation{
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorEmail:    strings.TrimSpace(req.DonorEmail),
		DonorPhone:    req.DonorPhone,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: enums.PaymentPending,
		Purpose:       req.Purpose,
		PartnerID:     req.PartnerID,
		TransactionID: req.TransactionID,
		IsRecurring:   req.IsRecurring,
		IsAnonymous:   req.IsAnonymous,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.donationRepo.CreateDonation(ctx, tx, donation); err != nil {
			return err
		}
		// 收据编号依赖行 ID，只能在插入之后生成
		receipt := entities.BuildReceiptNumber(s.receiptPrefix, donation.CreatedAt, donation.ID)
		if err := s.donationRepo.SetReceiptNumber(ctx, tx, donation.ID, receipt); err != nil {
			return err
		}
		donation.ReceiptNumber = &receipt
		return nil
	})
	if err != nil {
		s.logger.Error("登记捐赠失败", zap.String("email", donation.DonorEmail), zap.Error(err))
		return nil, fmt.Errorf("登记捐赠失败: %w", err)
	}

	s.logger.Info("捐赠已登记",
		zap.Uint64("donationID", donation.ID),
		zap.String("receipt", *donation.ReceiptNumber),
		zap.Float64("amount", donation.Amount),
		zap.String("currency", donation.Currency))
	s.publishEngagementEvent(producer.EventDonationRecorded, donation.ID, map[string]interface{}{
		"receipt_number": *donation.ReceiptNumber,
		"amount":         donation.Amount,
		"currency":       donation.Currency,
		"payment_method": string(donation.PaymentMethod),
	})
	return &vo.DonationReceiptVO{
		ID:            donation.ID,
		ReceiptNumber: *donation.ReceiptNumber,
		Amount:        donation.Amount,
		Currency:      donation.Currency,
		PaymentStatus: donation.PaymentStatus,
		CreatedAt:     donation.CreatedAt,
	}, nil
}

func (s *formsService) Subscribe(ctx context.Context, req *dto.NewsletterSubscribeRequest) (*vo.NewsletterVO, error) {
	email := normalizeEmail(req.Email)
	result := &vo.NewsletterVO{Email: email}

	existing, err := s.newsletterRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		result.AlreadySubscribed = true
		return result, nil
	case err == nil:
		if err := s.newsletterRepo.Reactivate(ctx, existing.ID, strings.TrimSpace(req.Name), s.now()); err != nil {
			return nil, fmt.Errorf("重新订阅失败: %w", err)
		}
		s.logger.Info("退订用户重新订阅", zap.Uint64("subscriberID", existing.ID))
		s.publishEngagementEvent(producer.EventNewsletterSubscribed, existing.ID, map[string]interface{}{"email": email, "resubscribed": true})
		return result, nil
	case !errors.Is(err, commonerrors.ErrRepoNotFound):
		return nil, err
	}

	sub := &entities.NewsletterSubscriber{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		IsActive:     true,
		SubscribedAt: s.now(),
	}
	if err := s.newsletterRepo.CreateSubscriber(ctx, sub); err != nil {
		// 并发请求先一步写入了同一邮箱
		if errors.Is(err, myErrors.ErrAlreadySubscribed) {
			result.AlreadySubscribed = true
			return result, nil
		}
		return nil, fmt.Errorf("保存订阅失败: %w", err)
	}
	s.publishEngagementEvent(producer.EventNewsletterSubscribed, sub.ID, map[string]interface{}{"email": email})
	return result, nil
}

func (s *formsService) Unsubscribe(ctx context.Context, req *dto.NewsletterUnsubscribeRequest) (*vo.NewsletterVO, error) {
	email := normalizeEmail(req.Email)
	if err := s.newsletterRepo.Deactivate(ctx, email, s.now()); err != nil {
		return nil, err
	}
	s.logger.Info("邮件订阅已退订", zap.String("email", email))
	return &vo.NewsletterVO{Email: email}, nil
}

func (s *formsService) publishEngagementEvent(eventType string, entityID uint64, payload map[string]interface{}) {
	if s.kafkaSvc == nil {
		return
	}
	go func() {
		if err := s.kafkaSvc.SendEngagementEvent(context.Background(), eventType, entityID, payload); err != nil {
			s.logger.Error("发送表单事件失败", zap.String("type", eventType), zap.Uint64("entityID", entityID), zap.Error(err))
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
