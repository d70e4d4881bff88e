package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/repo/redis"
	"github.com/Xushengqwer/foundation_service/seeddata"
)

// BlogPublicService 公开博客页面。
// 数据库中一篇文章都没有（任何状态）时，列表与详情改为展示内置示例文章。
type BlogPublicService interface {
	// ListBlogs 博客列表：非新闻类与新闻类各最多 10 篇，附带分页参数
	ListBlogs(ctx context.Context, query dto.BlogListQuery) (*vo.BlogListingVO, error)

	// GetBlogDetail 按 slug 获取已发布文章并原子地增加浏览量；
	// 草稿、归档与不存在的 slug 一律返回 commonerrors.ErrRepoNotFound
	GetBlogDetail(ctx context.Context, slug string) (*vo.BlogDetailVO, error)

	// LatestBlog 最新发布的一篇文章（不计浏览量）
	LatestBlog(ctx context.Context) (*vo.BlogDetailVO, error)

	// PopularBlogs 热门文章。优先读 Redis 排行，排行不可用或为空时按数据库浏览量排序。
	PopularBlogs(ctx context.Context, limit int) ([]vo.BlogPostVO, error)

	// FeaturedBlogs 推荐的已发布文章
	FeaturedBlogs(ctx context.Context, limit int) ([]vo.BlogPostVO, error)
}

type blogPublicService struct {
	postRepo     mysql.BlogPostRepository
	ranking      redis.PopularPostsRepository // 可为 nil
	popularLimit int
	logger       *zap.Logger
}

// NewBlogPublicService 创建公开博客服务
func NewBlogPublicService(postRepo mysql.BlogPostRepository, ranking redis.PopularPostsRepository, popularLimit int, logger *zap.Logger) BlogPublicService {
	if popularLimit <= 0 {
		popularLimit = constant.DefaultPopularPostsLimit
	}
	return &blogPublicService{
		postRepo:     postRepo,
		ranking:      ranking,
		popularLimit: popularLimit,
		logger:       logger,
	}
}

// seedMode 数据库中没有任何文章时返回 true
func (s *blogPublicService) seedMode(ctx context.Context) (bool, error) {
	count, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return false, fmt.Errorf("统计文章数量失败: %w", err)
	}
	return count == 0, nil
}

// ListBlogs 实现博客列表
func (s *blogPublicService) ListBlogs(ctx context.Context, query dto.BlogListQuery) (*vo.BlogListingVO, error) {
	search := strings.TrimSpace(query.Q)
	result := &vo.BlogListingVO{
		PageSize: constant.BlogListingPageSize,
		Query:    search,
		Category: string(query.Category),
	}

	seed, err := s.seedMode(ctx)
	if err != nil {
		return nil, err
	}
	if seed {
		result.FromSeed = true
		result.BlogPosts = vo.MapSeedPosts(seeddata.Blog())
		result.NewsPosts = vo.MapSeedPosts(seeddata.News())
		result.TotalPages = totalPages(len(result.BlogPosts))
		return result, nil
	}

	news := enums.CategoryNews
	blogFilter := dto.PublishedPostFilter{
		Search:          search,
		ExcludeCategory: &news,
		Limit:           constant.BlogListingSectionLimit,
	}
	newsFilter := dto.PublishedPostFilter{
		Search:   search,
		Category: &news,
		Limit:    constant.BlogListingSectionLimit,
	}
	if query.Category != "" {
		category := query.Category
		blogFilter.Category = &category
	}

	blogPosts, err := s.postRepo.ListPublished(ctx, blogFilter)
	if err != nil {
		return nil, err
	}
	result.BlogPosts = vo.MapBlogPosts(blogPosts, seeddata.ImageFor)

	// 指定了非新闻分类时新闻区为空
	if query.Category == "" || query.Category == enums.CategoryNews {
		newsPosts, err := s.postRepo.ListPublished(ctx, newsFilter)
		if err != nil {
			return nil, err
		}
		result.NewsPosts = vo.MapBlogPosts(newsPosts, seeddata.ImageFor)
	} else {
		result.NewsPosts = []vo.BlogPostVO{}
	}
	result.TotalPages = totalPages(len(result.BlogPosts))
	return result, nil
}

// GetBlogDetail 实现文章详情
func (s *blogPublicService) GetBlogDetail(ctx context.Context, slug string) (*vo.BlogDetailVO, error) {
	seed, err := s.seedMode(ctx)
	if err != nil {
		return nil, err
	}
	if seed {
		p, ok := seeddata.BySlug(slug)
		if !ok {
			return nil, commonerrors.ErrRepoNotFound
		}
		return seedDetail(p), nil
	}

	post, err := s.postRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViewCount(ctx, post.ID); err != nil {
		return nil, fmt.Errorf("增加浏览量失败: %w", err)
	}
	post.ViewCount++
	if s.ranking != nil {
		if err := s.ranking.RecordView(ctx, post.ID); err != nil {
			s.logger.Warn("记录热门排行失败", zap.Uint64("postID", post.ID), zap.Error(err))
		}
	}

	return s.detailOf(ctx, post)
}

// LatestBlog 实现最新文章
func (s *blogPublicService) LatestBlog(ctx context.Context) (*vo.BlogDetailVO, error) {
	seed, err := s.seedMode(ctx)
	if err != nil {
		return nil, err
	}
	if seed {
		blog := seeddata.Blog()
		if len(blog) == 0 {
			return nil, commonerrors.ErrRepoNotFound
		}
		return seedDetail(blog[0]), nil
	}

	post, err := s.postRepo.LatestPublished(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailOf(ctx, post)
}

// PopularBlogs 实现热门文章
func (s *blogPublicService) PopularBlogs(ctx context.Context, limit int) ([]vo.BlogPostVO, error) {
	if limit <= 0 {
		limit = s.popularLimit
	}

	if s.ranking != nil {
		ids, err := s.ranking.TopIDs(ctx, limit)
		switch {
		case err == nil:
			posts, err := s.postRepo.GetPublishedByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			if len(posts) > 0 {
				return vo.MapBlogPosts(posts, seeddata.ImageFor), nil
			}
		case errors.Is(err, myErrors.ErrCacheMiss):
			s.logger.Debug("热门排行为空，回退到数据库查询")
		default:
			s.logger.Warn("读取热门排行失败，回退到数据库查询", zap.Error(err))
		}
	}

	posts, err := s.postRepo.TopPublishedByViews(ctx, limit)
	if err != nil {
		return nil, err
	}
	return vo.MapBlogPosts(posts, seeddata.ImageFor), nil
}

// FeaturedBlogs 实现推荐文章
func (s *blogPublicService) FeaturedBlogs(ctx context.Context, limit int) ([]vo.BlogPostVO, error) {
	posts, err := s.postRepo.ListPublished(ctx, dto.PublishedPostFilter{FeaturedOnly: true, Limit: limit})
	if err != nil {
		return nil, err
	}
	return vo.MapBlogPosts(posts, seeddata.ImageFor), nil
}

func (s *blogPublicService) detailOf(ctx context.Context, post *entities.BlogPost) (*vo.BlogDetailVO, error) {
	category := post.Category
	excludeID := post.ID
	related, err := s.postRepo.ListPublished(ctx, dto.PublishedPostFilter{
		Category:  &category,
		ExcludeID: &excludeID,
		Limit:     constant.RelatedPostsLimit,
	})
	if err != nil {
		return nil, err
	}
	return &vo.BlogDetailVO{
		Post:         vo.NewBlogPostVO(post, 0, true, seeddata.ImageFor),
		RelatedPosts: vo.MapBlogPosts(related, seeddata.ImageFor),
	}, nil
}

// seedDetail 示例文章的详情，相关文章取同一展示分类的其他示例文章
func seedDetail(p seeddata.Post) *vo.BlogDetailVO {
	related := make([]seeddata.Post, 0, constant.RelatedPostsLimit)
	for _, other := range append(seeddata.Blog(), seeddata.News()...) {
		if len(related) == constant.RelatedPostsLimit {
			break
		}
		if other.Category == p.Category && other.Slug != p.Slug {
			related = append(related, other)
		}
	}
	return &vo.BlogDetailVO{
		Post:         vo.NewSeedPostVO(p, true),
		RelatedPosts: vo.MapSeedPosts(related),
		FromSeed:     true,
	}
}

// totalPages 按每页 3 篇计算页数，至少为 1
func totalPages(n int) int {
	pages := (n + constant.BlogListingPageSize - 1) / constant.BlogListingPageSize
	if pages < 1 {
		return 1
	}
	return pages
}
