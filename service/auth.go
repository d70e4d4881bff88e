package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// MinPasswordLength 后台账号密码最短长度
const MinPasswordLength = 8

// StaffClaims 后台登录令牌中的声明，subject 为账号 ID
type StaffClaims struct {
	Role enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

// NewStaffAccountInput 创建后台账号所需的信息
type NewStaffAccountInput struct {
	Username    string
	Password    string
	Role        enums.StaffRole
	DisplayName string
	Email       string
}

// AuthService 后台账号认证与账号维护
type AuthService interface {
	// Login 校验用户名密码并签发令牌。账号不存在、密码错误、账号停用都返回 myErrors.ErrInvalidCredentials。
	Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginVO, error)

	// ParseToken 校验令牌签名与有效期，返回账号 ID；失败返回 myErrors.ErrInvalidToken
	ParseToken(token string) (uint64, error)

	// ResolveActor 按账号 ID 加载当前角色。账号已删除或停用时返回 myErrors.ErrInvalidToken。
	ResolveActor(ctx context.Context, accountID uint64) (workflow.Actor, error)

	CreateAccount(ctx context.Context, in NewStaffAccountInput) (*entities.StaffAccount, error)

	// RemoveAccount 删除账号，其名下文章保留，作者置空
	RemoveAccount(ctx context.Context, id uint64) error

	ListAccounts(ctx context.Context) ([]*entities.StaffAccount, error)
}

type authService struct {
	db          *gorm.DB
	accountRepo mysql.StaffAccountRepository
	postRepo    mysql.BlogPostRepository
	secret      []byte
	issuer      string
	ttl         time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService 创建认证服务。secret 为 HS256 签名密钥。
func NewAuthService(db *gorm.DB, accountRepo mysql.StaffAccountRepository, postRepo mysql.BlogPostRepository, secret, issuer string, ttl time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		db:          db,
		accountRepo: accountRepo,
		postRepo:    postRepo,
		secret:      []byte(secret),
		issuer:      issuer,
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
	}
}

// Login 实现登录
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginVO, error) {
	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, myErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("后台登录密码错误", zap.String("username", account.Username))
		return nil, myErrors.ErrInvalidCredentials
	}
	// 只有启用且具有合法角色的账号可以登录
	if !account.IsActive || !account.Role.IsValid() {
		s.logger.Warn("停用或无角色的账号尝试登录", zap.String("username", account.Username))
		return nil, myErrors.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := StaffClaims{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(account.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}

	if err := s.accountRepo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.Warn("更新最后登录时间失败", zap.Uint64("accountID", account.ID), zap.Error(err))
	}
	s.logger.Info("后台账号登录成功", zap.Uint64("accountID", account.ID), zap.String("role", string(account.Role)))
	return &vo.LoginVO{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   vo.NewStaffAccountVO(account),
	}, nil
}

// ParseToken 实现令牌校验
func (s *authService) ParseToken(tokenString string) (uint64, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	var claims StaffClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", myErrors.ErrInvalidToken, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, myErrors.ErrInvalidToken
	}
	return id, nil
}

// ResolveActor 以数据库中的当前角色为准，令牌签发后的角色变更立即生效
func (s *authService) ResolveActor(ctx context.Context, accountID uint64) (workflow.Actor, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return workflow.Actor{}, myErrors.ErrInvalidToken
		}
		return workflow.Actor{}, err
	}
	if !account.IsActive || !account.Role.IsValid() {
		return workflow.Actor{}, myErrors.ErrInvalidToken
	}
	return workflow.Actor{AccountID: account.ID, Role: account.Role}, nil
}

// CreateAccount 实现创建账号
func (s *authService) CreateAccount(ctx context.Context, in NewStaffAccountInput) (*entities.StaffAccount, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, errors.New("用户名不能为空")
	}
	if !in.Role.IsValid() {
		return nil, fmt.Errorf("未知角色: %q", in.Role)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("密码长度不能少于 %d 位", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	account := &entities.StaffAccount{
		Username:     username,
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("后台账号已创建", zap.Uint64("accountID", account.ID), zap.String("username", username), zap.String("role", string(in.Role)))
	return account, nil
}

// RemoveAccount 实现删除账号
func (s *authService) RemoveAccount(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.postRepo.ClearAuthor(ctx, tx, id); err != nil {
			return err
		}
		return s.accountRepo.DeleteAccount(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("后台账号已删除", zap.Uint64("accountID", id))
	return nil
}

// ListAccounts 实现账号列表
func (s *authService) ListAccounts(ctx context.Context) ([]*entities.StaffAccount, error) {
	return s.accountRepo.ListAccounts(ctx)
}
