package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// publishedOrder 已发布文章的统一排序：发布时间倒序，其次创建时间倒序
const publishedOrder = "published_at DESC, created_at DESC, id DESC"

// likeEscaper 转义 LIKE 通配符，搜索词按字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 生成不区分大小写的包含匹配模式，配合 ESCAPE '!' 使用
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// BlogPostRepository 定义了文章数据的持久化操作接口。
type BlogPostRepository interface {
	// CreatePost 插入新文章。slug 唯一索引冲突时返回 myErrors.ErrSlugTaken。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.BlogPost) error

	// SavePost 整体保存文章的可编辑字段。slug、作者、浏览量、创建时间不会被覆盖。
	SavePost(ctx context.Context, db *gorm.DB, post *entities.BlogPost) error

	// DeletePost 物理删除文章，未找到返回 commonerrors.ErrRepoNotFound。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// GetPostByID 按主键获取（任意状态），附带作者信息。
	GetPostByID(ctx context.Context, id uint64) (*entities.BlogPost, error)

	// GetPublishedBySlug 只返回已发布文章；草稿、归档和不存在一样视为未找到。
	GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error)

	SlugExists(ctx context.Context, slug string) (bool, error)

	// CountAll 统计全部文章（任意状态），为 0 时公开页面展示内置示例文章。
	CountAll(ctx context.Context) (int64, error)

	ListPublished(ctx context.Context, filter dto.PublishedPostFilter) ([]*entities.BlogPost, error)

	// LatestPublished 最新一篇已发布文章，没有时返回 commonerrors.ErrRepoNotFound。
	LatestPublished(ctx context.Context) (*entities.BlogPost, error)

	// GetPublishedByIDs 按给定 ID 批量取已发布文章，结果顺序与 ids 一致，非发布状态的被跳过。
	GetPublishedByIDs(ctx context.Context, ids []uint64) ([]*entities.BlogPost, error)

	// TopPublishedByViews 浏览量最高的已发布文章，用于重建热门排行。
	TopPublishedByViews(ctx context.Context, limit int) ([]*entities.BlogPost, error)

	// IncrementViewCount 原子地把浏览量加一，不做读-改-写。
	IncrementViewCount(ctx context.Context, id uint64) error

	// ListForManagement 后台文章列表，按创建时间倒序，返回当前页与总数。
	ListForManagement(ctx context.Context, filter dto.ManagePostFilter) ([]*entities.BlogPost, int64, error)

	// ClearAuthor 账号删除时把其文章的作者置空。
	ClearAuthor(ctx context.Context, db *gorm.DB, accountID uint64) error
}

type blogPostRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBlogPostRepository(db *gorm.DB, logger *zap.Logger) BlogPostRepository {
	return &blogPostRepository{db: db, logger: logger}
}

func (r *blogPostRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.BlogPost) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *blogPostRepository) SavePost(ctx context.Context, db *gorm.DB, post *entities.BlogPost) error {
	result := db.WithContext(ctx).
		Model(post).
		Select("*").
		Omit("id", "slug", "author_id", "view_count", "created_at", clause.Associations).
		Updates(post)
	if result.Error != nil {
		r.logger.Error("保存文章失败", zap.Uint64("postID", post.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *blogPostRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *blogPostRepository) GetPostByID(ctx context.Context, id uint64) (*entities.BlogPost, error) {
	var post entities.BlogPost
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取文章未找到", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取文章失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	var post entities.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ? AND status = ?", slug, enums.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取文章失败", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.BlogPost{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blogPostRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.BlogPost{}).Count(&count).Error; err != nil {
		r.logger.Error("统计文章总数失败", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *blogPostRepository) ListPublished(ctx context.Context, filter dto.PublishedPostFilter) ([]*entities.BlogPost, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.BlogPost{}).
		Preload("Author").
		Where("status = ?", enums.PostStatusPublished)

	if filter.Search != "" {
		like := containsPattern(filter.Search)
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!' OR LOWER(excerpt) LIKE ? ESCAPE '!')", like, like, like)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.ExcludeCategory != nil {
		query = query.Where("category <> ?", *filter.ExcludeCategory)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.ExcludeID != nil {
		query = query.Where("id <> ?", *filter.ExcludeID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var posts []*entities.BlogPost
	if err := query.Order(publishedOrder).Find(&posts).Error; err != nil {
		r.logger.Error("查询已发布文章失败", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("查询已发布文章失败: %w", err)
	}
	return posts, nil
}

func (r *blogPostRepository) LatestPublished(ctx context.Context) (*entities.BlogPost, error) {
	posts, err := r.ListPublished(ctx, dto.PublishedPostFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, commonerrors.ErrRepoNotFound
	}
	return posts[0], nil
}

func (r *blogPostRepository) GetPublishedByIDs(ctx context.Context, ids []uint64) ([]*entities.BlogPost, error) {
	if len(ids) == 0 {
		return []*entities.BlogPost{}, nil
	}
	var posts []*entities.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ? AND status = ?", ids, enums.PostStatusPublished).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("批量获取已发布文章失败", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}

	byID := make(map[uint64]*entities.BlogPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*entities.BlogPost, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *blogPostRepository) TopPublishedByViews(ctx context.Context, limit int) ([]*entities.BlogPost, error) {
	var posts []*entities.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ?", enums.PostStatusPublished).
		Order("view_count DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("按浏览量查询文章失败", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepository) IncrementViewCount(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		r.logger.Error("增加浏览量失败", zap.Uint64("postID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *blogPostRepository) ListForManagement(ctx context.Context, filter dto.ManagePostFilter) ([]*entities.BlogPost, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&entities.BlogPost{})
		if filter.AuthorID != nil {
			db = db.Where("author_id = ?", *filter.AuthorID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		r.logger.Error("后台文章列表计数失败", zap.Error(err))
		return nil, 0, fmt.Errorf("后台文章列表计数失败: %w", err)
	}
	posts := make([]*entities.BlogPost, 0)
	if total == 0 {
		return posts, 0, nil
	}

	err := r.db.WithContext(ctx).Scopes(scope).
		Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("后台文章列表查询失败", zap.Int("offset", filter.Offset), zap.Int("limit", filter.Limit), zap.Error(err))
		return nil, 0, fmt.Errorf("后台文章列表查询失败: %w", err)
	}
	return posts, total, nil
}

func (r *blogPostRepository) ClearAuthor(ctx context.Context, db *gorm.DB, accountID uint64) error {
	return db.WithContext(ctx).
		Model(&entities.BlogPost{}).
		Where("author_id = ?", accountID).
		UpdateColumn("author_id", nil).Error
}
