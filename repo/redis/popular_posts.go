package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// RankEntry 热门排行中的一项
type RankEntry struct {
	PostID uint64
	Views  int64
}

// PopularPostsRepository 已发布文章的浏览量排行（ZSet，member 为文章 ID，score 为浏览量）。
// 排行只是展示用的近似值，数据库中的 view_count 才是准确值。
type PopularPostsRepository interface {
	// RecordView 文章被访问一次，分数加一
	RecordView(ctx context.Context, postID uint64) error
	// Remove 文章删除或下线时移出排行
	Remove(ctx context.Context, postID uint64) error
	// TopIDs 按分数倒序返回前 n 个文章 ID；排行为空时返回 myErrors.ErrCacheMiss
	TopIDs(ctx context.Context, n int) ([]uint64, error)
	// Rebuild 用给定数据整体替换排行（临时 Key + RENAME，读方不会看到半成品）
	Rebuild(ctx context.Context, entries []RankEntry) error
}

type popularPostsRepository struct {
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewPopularPostsRepository(redisClient *redis.Client, logger *zap.Logger) PopularPostsRepository {
	return &popularPostsRepository{redisClient: redisClient, logger: logger}
}

func (r *popularPostsRepository) RecordView(ctx context.Context, postID uint64) error {
	member := strconv.FormatUint(postID, 10)
	if err := r.redisClient.ZIncrBy(ctx, constant.PopularPostsRankKey, 1, member).Err(); err != nil {
		r.logger.Error("热门排行加分失败", zap.Uint64("postID", postID), zap.Error(err))
		return fmt.Errorf("更新热门排行失败: %w", err)
	}
	return nil
}

func (r *popularPostsRepository) Remove(ctx context.Context, postID uint64) error {
	member := strconv.FormatUint(postID, 10)
	if err := r.redisClient.ZRem(ctx, constant.PopularPostsRankKey, member).Err(); err != nil {
		r.logger.Error("从热门排行移除文章失败", zap.Uint64("postID", postID), zap.Error(err))
		return fmt.Errorf("从热门排行移除文章失败: %w", err)
	}
	return nil
}

func (r *popularPostsRepository) TopIDs(ctx context.Context, n int) ([]uint64, error) {
	if n <= 0 {
		return []uint64{}, nil
	}
	members, err := r.redisClient.ZRevRange(ctx, constant.PopularPostsRankKey, 0, int64(n-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErrors.ErrCacheMiss
		}
		r.logger.Error("读取热门排行失败", zap.Error(err))
		return nil, fmt.Errorf("读取热门排行失败: %w", err)
	}
	if len(members) == 0 {
		return nil, myErrors.ErrCacheMiss
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, parseErr := strconv.ParseUint(m, 10, 64)
		if parseErr != nil {
			r.logger.Warn("热门排行中存在无法解析的成员，已跳过", zap.String("member", m))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *popularPostsRepository) Rebuild(ctx context.Context, entries []RankEntry) error {
	finalKey := constant.PopularPostsRankKey
	tempKey := constant.PopularPostsRankTmpKey

	if len(entries) == 0 {
		r.logger.Info("没有可排行的已发布文章，清空热门排行", zap.String("key", finalKey))
		return r.redisClient.Del(ctx, finalKey).Err()
	}

	members := make([]redis.Z, 0, len(entries))
	for _, e := range entries {
		members = append(members, redis.Z{Score: float64(e.Views), Member: strconv.FormatUint(e.PostID, 10)})
	}

	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, tempKey)
		pipe.ZAdd(ctx, tempKey, members...)
		pipe.Rename(ctx, tempKey, finalKey)
		return nil
	})
	if err != nil {
		r.logger.Error("重建热门排行失败，现有排行保留", zap.Int("entries", len(entries)), zap.Error(err))
		return fmt.Errorf("重建热门排行失败: %w", err)
	}
	r.logger.Info("热门排行重建完成", zap.String("key", finalKey), zap.Int("entries", len(entries)))
	return nil
}
