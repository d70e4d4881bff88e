package mysql

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/entities"
)

// ContactMessageRepository 联系留言的持久化操作
type ContactMessageRepository interface {
	CreateMessage(ctx context.Context, msg *entities.ContactMessage) error
	CountUnread(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*entities.ContactMessage, error)
	MarkRead(ctx context.Context, ids []uint64) (int64, error)
	// MarkResponded 标记为已回复，同时视为已读
	MarkResponded(ctx context.Context, ids []uint64) (int64, error)
}

type contactMessageRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewContactMessageRepository(db *gorm.DB, logger *zap.Logger) ContactMessageRepository {
	return &contactMessageRepository{db: db, logger: logger}
}

func (r *contactMessageRepository) CreateMessage(ctx context.Context, msg *entities.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		r.logger.Error("保存联系留言失败", zap.String("email", msg.Email), zap.Error(err))
		return err
	}
	return nil
}

func (r *contactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *contactMessageRepository) ListRecent(ctx context.Context, limit int) ([]*entities.ContactMessage, error) {
	var list []*entities.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *contactMessageRepository) MarkRead(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entities.ContactMessage{}).Where("id IN ?", ids).Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *contactMessageRepository) MarkResponded(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entities.ContactMessage{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_read": true, "is_responded": true})
	return result.RowsAffected, result.Error
}
