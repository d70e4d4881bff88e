package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/dependencies"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/mq/producer"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/repo/redis"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// BlogManageService 后台文章管理。所有方法都以当前登录账号（workflow.Actor）的身份执行，
// 权限与状态迁移规则由 workflow 包判定。
type BlogManageService interface {
	// CreatePost 创建文章。无论请求内容如何，新文章一律为草稿，作者为当前账号。
	// - slug 为空时由标题生成；生成结果为空返回 myErrors.ErrInvalidSlug，已被占用返回 myErrors.ErrSlugTaken。
	// - featuredImage 可为 nil。
	CreatePost(ctx context.Context, actor workflow.Actor, req *dto.CreatePostRequest, featuredImage *multipart.FileHeader) (*vo.ManagePostVO, error)

	// UpdatePost 编辑文章。内容字段整体替换；status / is_featured 只对发布者生效。
	// 非作者且非发布者返回 myErrors.ErrPermissionDenied，非法迁移返回 myErrors.ErrInvalidTransition，两种情况下文章都不会被修改。
	UpdatePost(ctx context.Context, actor workflow.Actor, id uint64, req *dto.UpdatePostRequest, featuredImage *multipart.FileHeader) (*vo.ManagePostVO, error)

	// DeletePost 删除文章，仅发布者可用。
	DeletePost(ctx context.Context, actor workflow.Actor, id uint64) error

	// GetPost 获取单篇文章（任意状态）。作者只能查看自己的文章。
	GetPost(ctx context.Context, actor workflow.Actor, id uint64) (*vo.ManagePostVO, error)

	// ListPosts 发布者看到全部文章，作者只看到自己的文章。
	ListPosts(ctx context.Context, actor workflow.Actor, req dto.ManagePostListRequest) (*vo.ManagePostListVO, error)

	// ChangeStatus 直接修改状态，供后台批量操作使用，仅发布者可用。
	ChangeStatus(ctx context.Context, actor workflow.Actor, id uint64, to enums.PostStatus) error

	// SetFeatured 修改推荐标记，仅发布者可用。
	SetFeatured(ctx context.Context, actor workflow.Actor, id uint64, featured bool) error
}

type blogManageService struct {
	db          *gorm.DB
	postRepo    mysql.BlogPostRepository
	galleryRepo mysql.GalleryRepository
	ranking     redis.PopularPostsRepository // 可为 nil
	media       *mediaStore
	kafkaSvc    *producer.KafkaProducer // 可为 nil
	logger      *zap.Logger
	now         func() time.Time
}

// NewBlogManageService 创建后台文章管理服务
func NewBlogManageService(
	db *gorm.DB,
	postRepo mysql.BlogPostRepository,
	galleryRepo mysql.GalleryRepository,
	ranking redis.PopularPostsRepository,
	cosClient dependencies.COSClientInterface,
	maxUploadSizeMB int64,
	kafkaSvc *producer.KafkaProducer,
	logger *zap.Logger,
) BlogManageService {
	return &blogManageService{
		db:          db,
		postRepo:    postRepo,
		galleryRepo: galleryRepo,
		ranking:     ranking,
		media:       newMediaStore(cosClient, maxUploadSizeMB, logger),
		kafkaSvc:    kafkaSvc,
		logger:      logger,
		now:         time.Now,
	}
}

// CreatePost 实现创建文章
func (s *blogManageService) CreatePost(ctx context.Context, actor workflow.Actor, req *dto.CreatePostRequest, featuredImage *multipart.FileHeader) (*vo.ManagePostVO, error) {
	source := req.Slug
	if source == "" {
		source = req.Title
	}
	slug := workflow.Slugify(source)
	if slug == "" {
		return nil, myErrors.ErrInvalidSlug
	}

	exists, err := s.postRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("检查 slug 失败: %w", err)
	}
	if exists {
		return nil, myErrors.ErrSlugTaken
	}

	asset, err := s.media.upload(ctx, constant.COSObjectKeyPrefixPostImages, strconv.FormatUint(actor.AccountID, 10), featuredImage)
	if err != nil {
		return nil, err
	}

	content := workflow.Content{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Category:        req.Category,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if asset != nil {
		content.FeaturedImage = &asset.URL
	}
	post := workflow.NewDraft(actor, content, slug)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.CreatePost(ctx, tx, post)
	})
	if err != nil {
		s.media.discard(asset)
		s.logger.Error("创建文章失败", zap.String("slug", slug), zap.Uint64("actorID", actor.AccountID), zap.Error(err))
		return nil, fmt.Errorf("创建文章失败: %w", err)
	}

	s.logger.Info("文章草稿已创建", zap.Uint64("postID", post.ID), zap.String("slug", slug), zap.Uint64("actorID", actor.AccountID))
	return s.reload(ctx, post)
}

// UpdatePost 实现编辑文章
func (s *blogManageService) UpdatePost(ctx context.Context, actor workflow.Actor, id uint64, req *dto.UpdatePostRequest, featuredImage *multipart.FileHeader) (*vo.ManagePostVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 先判权限，避免无权限的请求上传文件
	if err := workflow.AuthorizeEdit(actor, post); err != nil {
		s.logger.Warn("无权编辑文章", zap.Uint64("postID", id), zap.Uint64("actorID", actor.AccountID))
		return nil, err
	}

	asset, err := s.media.upload(ctx, constant.COSObjectKeyPrefixPostImages, strconv.FormatUint(actor.AccountID, 10), featuredImage)
	if err != nil {
		return nil, err
	}

	edit := workflow.Edit{
		Content: workflow.Content{
			Title:           req.Title,
			Excerpt:         req.Excerpt,
			Content:         req.Content,
			Category:        req.Category,
			MetaTitle:       req.MetaTitle,
			MetaDescription: req.MetaDescription,
		},
		Status:     req.Status,
		IsFeatured: req.IsFeatured,
	}
	if asset != nil {
		edit.Content.FeaturedImage = &asset.URL
	}

	change, err := workflow.ApplyEdit(actor, post, edit, s.now())
	if err != nil {
		s.media.discard(asset)
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.SavePost(ctx, tx, post)
	})
	if err != nil {
		s.media.discard(asset)
		s.logger.Error("保存文章失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, fmt.Errorf("保存文章失败: %w", err)
	}

	s.afterStatusChange(ctx, post, change, actor.AccountID)
	return s.reload(ctx, post)
}

// DeletePost 实现删除文章
func (s *blogManageService) DeletePost(ctx context.Context, actor workflow.Actor, id uint64) error {
	if err := workflow.AuthorizeDelete(actor); err != nil {
		s.logger.Warn("无权删除文章", zap.Uint64("postID", id), zap.Uint64("actorID", actor.AccountID))
		return err
	}
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.galleryRepo.ClearBlogPost(ctx, tx, id); err != nil {
			return err
		}
		return s.postRepo.DeletePost(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除文章失败", zap.Uint64("postID", id), zap.Error(err))
		return fmt.Errorf("删除文章失败: %w", err)
	}

	s.removeFromRanking(ctx, id)
	s.publishContentEvent(producer.EventPostDeleted, post, actor.AccountID)
	s.logger.Info("文章已删除", zap.Uint64("postID", id), zap.Uint64("actorID", actor.AccountID))
	return nil
}

// GetPost 实现获取单篇文章
func (s *blogManageService) GetPost(ctx context.Context, actor workflow.Actor, id uint64) (*vo.ManagePostVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.AuthorizeEdit(actor, post); err != nil {
		return nil, err
	}
	v := vo.NewManagePostVO(post)
	return &v, nil
}

// ListPosts 实现后台文章列表
func (s *blogManageService) ListPosts(ctx context.Context, actor workflow.Actor, req dto.ManagePostListRequest) (*vo.ManagePostListVO, error) {
	req.Normalize(constant.DefaultManagePageSize, constant.MaxManagePageSize)
	posts, total, err := s.postRepo.ListForManagement(ctx, dto.ManagePostFilter{
		AuthorID: workflow.ListScope(actor),
		Status:   req.Status,
		Offset:   req.GetOffset(),
		Limit:    req.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("查询文章列表失败: %w", err)
	}

	result := &vo.ManagePostListVO{
		Posts:    make([]vo.ManagePostVO, 0, len(posts)),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	for _, p := range posts {
		result.Posts = append(result.Posts, vo.NewManagePostVO(p))
	}
	return result, nil
}

// ChangeStatus 实现直接修改状态
func (s *blogManageService) ChangeStatus(ctx context.Context, actor workflow.Actor, id uint64, to enums.PostStatus) error {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	change, err := workflow.ChangeStatus(actor, post, to, s.now())
	if err != nil {
		return err
	}
	if !change.Changed() {
		return nil
	}
	if err := s.postRepo.SavePost(ctx, s.db, post); err != nil {
		return fmt.Errorf("保存文章状态失败: %w", err)
	}
	s.afterStatusChange(ctx, post, change, actor.AccountID)
	return nil
}

// SetFeatured 实现修改推荐标记
func (s *blogManageService) SetFeatured(ctx context.Context, actor workflow.Actor, id uint64, featured bool) error {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := workflow.SetFeatured(actor, post, featured); err != nil {
		return err
	}
	if err := s.postRepo.SavePost(ctx, s.db, post); err != nil {
		return fmt.Errorf("保存推荐标记失败: %w", err)
	}
	return nil
}

// afterStatusChange 状态变化后的副作用：离开 published 时移出热门排行，发布/归档时发送事件
func (s *blogManageService) afterStatusChange(ctx context.Context, post *entities.BlogPost, change workflow.StatusChange, actorID uint64) {
	if !change.Changed() {
		return
	}
	s.logger.Info("文章状态变更",
		zap.Uint64("postID", post.ID),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
		zap.Uint64("actorID", actorID))

	if change.From == enums.PostStatusPublished {
		s.removeFromRanking(ctx, post.ID)
	}
	switch change.To {
	case enums.PostStatusPublished:
		s.publishContentEvent(producer.EventPostPublished, post, actorID)
	case enums.PostStatusArchived:
		s.publishContentEvent(producer.EventPostArchived, post, actorID)
	}
}

func (s *blogManageService) removeFromRanking(ctx context.Context, postID uint64) {
	if s.ranking == nil {
		return
	}
	if err := s.ranking.Remove(ctx, postID); err != nil {
		// 排行会在下一次定时重建时自动纠正
		s.logger.Warn("从热门排行移除文章失败", zap.Uint64("postID", postID), zap.Error(err))
	}
}

// publishContentEvent 异步发送文章事件，失败只记录日志
func (s *blogManageService) publishContentEvent(eventType string, post *entities.BlogPost, actorID uint64) {
	if s.kafkaSvc == nil {
		return
	}
	snapshot := postSnapshot(post)
	go func() {
		if err := s.kafkaSvc.SendContentEvent(context.Background(), eventType, snapshot, actorID); err != nil {
			s.logger.Error("发送文章事件失败", zap.String("type", eventType), zap.Uint64("postID", snapshot.ID), zap.Error(err))
		}
	}()
}

// reload 重新读取文章以带上作者信息
func (s *blogManageService) reload(ctx context.Context, post *entities.BlogPost) (*vo.ManagePostVO, error) {
	fresh, err := s.postRepo.GetPostByID(ctx, post.ID)
	if err != nil {
		s.logger.Warn("重新读取文章失败，返回内存中的数据", zap.Uint64("postID", post.ID), zap.Error(err))
		fresh = post
	}
	v := vo.NewManagePostVO(fresh)
	return &v, nil
}

func postSnapshot(post *entities.BlogPost) producer.PostSnapshot {
	return producer.PostSnapshot{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Category:    string(post.Category),
		Status:      string(post.Status),
		PublishedAt: post.PublishedAt,
	}
}
