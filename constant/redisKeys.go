package constant

// Redis Key 相关常量
const (
	// PopularPostsRankKey 是已发布文章的热度排行榜。
	// 成员是文章 ID，分数是浏览量；详情页每次访问 ZINCRBY 1，定时任务从数据库全量重建。
	// Redis 类型: Sorted Set
	PopularPostsRankKey = "site:popular_posts"

	// PopularPostsRankTmpKey 重建排行榜时使用的临时 Key，写完后 RENAME 覆盖正式 Key。
	PopularPostsRankTmpKey = "site:popular_posts:tmp"
)
