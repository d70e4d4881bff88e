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

// StaffAccountRepository 后台账号的持久化操作
type StaffAccountRepository interface {
	// CreateAccount 用户名重复时返回 myErrors.ErrAccountExists
	CreateAccount(ctx context.Context, account *entities.StaffAccount) error
	GetByID(ctx context.Context, id uint64) (*entities.StaffAccount, error)
	GetByUsername(ctx context.Context, username string) (*entities.StaffAccount, error)
	TouchLastLogin(ctx context.Context, id uint64, at time.Time) error
	ListAccounts(ctx context.Context) ([]*entities.StaffAccount, error)
	DeleteAccount(ctx context.Context, db *gorm.DB, id uint64) error
}

type staffAccountRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStaffAccountRepository(db *gorm.DB, logger *zap.Logger) StaffAccountRepository {
	return &staffAccountRepository{db: db, logger: logger}
}

func (r *staffAccountRepository) CreateAccount(ctx context.Context, account *entities.StaffAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrAccountExists
		}
		r.logger.Error("创建后台账号失败", zap.String("username", account.Username), zap.Error(err))
		return err
	}
	return nil
}

func (r *staffAccountRepository) GetByID(ctx context.Context, id uint64) (*entities.StaffAccount, error) {
	var account entities.StaffAccount
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取后台账号失败", zap.Uint64("accountID", id), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *staffAccountRepository) GetByUsername(ctx context.Context, username string) (*entities.StaffAccount, error) {
	var account entities.StaffAccount
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据用户名获取后台账号失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *staffAccountRepository) TouchLastLogin(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.StaffAccount{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *staffAccountRepository) ListAccounts(ctx context.Context) ([]*entities.StaffAccount, error) {
	var accounts []*entities.StaffAccount
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *staffAccountRepository) DeleteAccount(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.StaffAccount{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
