package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/repo/redis"
)

// PopularPostsSource 重建排行所需的数据来源，mysql.BlogPostRepository 即满足
type PopularPostsSource interface {
	TopPublishedByViews(ctx context.Context, limit int) ([]*entities.BlogPost, error)
}

// PopularPostsTask 定时用数据库中的浏览量全量重建 Redis 热门排行。
// 详情页的 ZINCRBY 只是增量，重建负责纠正漂移并剔除已下线的文章。
type PopularPostsTask struct {
	source   PopularPostsSource
	ranking  redis.PopularPostsRepository
	cron     *cron.Cron
	schedule string
	rankSize int
	logger   *zap.Logger
}

// NewPopularPostsTask 创建任务，调用 Start 后才开始调度
func NewPopularPostsTask(source PopularPostsSource, ranking redis.PopularPostsRepository, cfg config.RankingConfig, logger *zap.Logger) *PopularPostsTask {
	schedule := cfg.CronSpec
	if schedule == "" {
		schedule = constant.DefaultPopularPostsCronSpec
	}
	rankSize := cfg.RankSize
	if rankSize <= 0 {
		rankSize = constant.DefaultPopularPostsRankSize
	}
	return &PopularPostsTask{
		source:   source,
		ranking:  ranking,
		cron:     cron.New(),
		schedule: schedule,
		rankSize: rankSize,
		logger:   logger,
	}
}

// Start 注册 cron 作业并启动调度
func (t *PopularPostsTask) Start() error {
	t.logger.Info("准备启动热门文章排行重建任务", zap.String("schedule", t.schedule))

	entryID, err := t.cron.AddFunc(t.schedule, func() {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), constant.PopularPostsRebuildTimeout)
		defer cancel()

		if err := t.Rebuild(ctx); err != nil {
			t.logger.Error("热门文章排行重建失败", zap.Error(err))
			return
		}
		t.logger.Info("热门文章排行重建完成", zap.Duration("duration", time.Since(startTime)))
	})
	if err != nil {
		return fmt.Errorf("添加热门排行 cron 作业失败 (schedule=%s): %w", t.schedule, err)
	}

	t.cron.Start()
	t.logger.Info("热门文章排行重建任务已启动", zap.Uint("cronEntryID", uint(entryID)))
	return nil
}

// Rebuild 执行一次全量重建，启动时也会直接调用一次用来预热
func (t *PopularPostsTask) Rebuild(ctx context.Context) error {
	posts, err := t.source.TopPublishedByViews(ctx, t.rankSize)
	if err != nil {
		return fmt.Errorf("查询浏览量排行失败: %w", err)
	}
	entries := make([]redis.RankEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, redis.RankEntry{PostID: p.ID, Views: p.ViewCount})
	}
	if err := t.ranking.Rebuild(ctx, entries); err != nil {
		return fmt.Errorf("写入热门排行失败: %w", err)
	}
	t.logger.Debug("热门排行已重建", zap.Int("size", len(entries)))
	return nil
}

// Stop 停止调度，返回的 context 在正在执行的作业结束后关闭
func (t *PopularPostsTask) Stop() context.Context {
	t.logger.Info("正在停止热门文章排行重建任务...")
	return t.cron.Stop()
}
