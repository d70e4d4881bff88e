package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// NewsletterRepository 邮件订阅者的持久化操作
type NewsletterRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.NewsletterSubscriber, error)
	// CreateSubscriber email 已存在时返回 myErrors.ErrAlreadySubscribed
	CreateSubscriber(ctx context.Context, sub *entities.NewsletterSubscriber) error
	// Reactivate 重新激活已退订的订阅者
	Reactivate(ctx context.Context, id uint64, name string, at time.Time) error
	// Deactivate 退订，未找到返回 commonerrors.ErrRepoNotFound
	Deactivate(ctx context.Context, email string, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
}

type newsletterRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNewsletterRepository(db *gorm.DB, logger *zap.Logger) NewsletterRepository {
	return &newsletterRepository{db: db, logger: logger}
}

func (r *newsletterRepository) GetByEmail(ctx context.Context, email string) (*entities.NewsletterSubscriber, error) {
	var sub entities.NewsletterSubscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据邮箱获取订阅者失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &sub, nil
}

func (r *newsletterRepository) CreateSubscriber(ctx context.Context, sub *entities.NewsletterSubscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (r *newsletterRepository) Reactivate(ctx context.Context, id uint64, name string, at time.Time) error {
	updates := map[string]interface{}{
		"is_active":       true,
		"subscribed_at":   at,
		"unsubscribed_at": nil,
	}
	if name != "" {
		updates["name"] = name
	}
	return r.db.WithContext(ctx).Model(&entities.NewsletterSubscriber{}).Where("id = ?", id).Updates(updates).Error
}

func (r *newsletterRepository) Deactivate(ctx context.Context, email string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"is_active": false, "unsubscribed_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *newsletterRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.NewsletterSubscriber{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
